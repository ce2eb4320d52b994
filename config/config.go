package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Measurement Measurement `mapstructure:"measurement" validate:"required"`
	Logging     Logging     `mapstructure:"logging" validate:"required"`
	Serving     Serving     `mapstructure:"serving" validate:"required"`
	Report      Report      `mapstructure:"report"`
	Workloads   []Workload  `mapstructure:"workloads" validate:"required,dive"`
}

type Measurement struct {
	Accumulate *bool `mapstructure:"accumulate" validate:"required"`
	DisableGC  *bool `mapstructure:"disableGC" validate:"required"`
	// Window is the number of recent samples kept for live aggregation.
	Window *int `mapstructure:"window" validate:"required"`
}

type Logging struct {
	Driver   *string  `mapstructure:"driver" validate:"oneof=noop stdout influxdb"`
	InfluxDB InfluxDB `mapstructure:"influxdb" validate:"required_if=Driver influxdb"`
}

type InfluxDB struct {
	Host   *string `mapstructure:"host"`
	Token  *string `mapstructure:"token"`
	Org    *string `mapstructure:"org"`
	Bucket *string `mapstructure:"bucket"`
}

type Serving struct {
	Enabled *bool   `mapstructure:"enabled" validate:"required"`
	Addr    *string `mapstructure:"addr" validate:"required_if=Enabled true"`
}

type Report struct {
	// HistogramDir, when set, is where per-identifier histograms are
	// written after each workload.
	HistogramDir *string `mapstructure:"histogramDir"`
}

type Workload struct {
	ID         *string  `mapstructure:"id" validate:"required"`
	Iterations *int     `mapstructure:"iterations" validate:"required,gt=0"`
	MeanMs     *float64 `mapstructure:"meanMs" validate:"required,gt=0"`
	StdDevMs   *float64 `mapstructure:"stdDevMs" validate:"required,gte=0"`
}

func setDefaults() {
	viper.SetDefault("Measurement.Accumulate", true)
	viper.SetDefault("Measurement.DisableGC", true)
	viper.SetDefault("Measurement.Window", 100)

	viper.SetDefault("Logging.Driver", "stdout")

	viper.SetDefault("Serving.Enabled", false)
	viper.SetDefault("Serving.Addr", ":8421")
}

func ReadConfig() *Config {
	viper.AutomaticEnv()
	setDefaults()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Fatalf("error: config.yaml not found in the working directory\nerr = %s", err)
		} else {
			log.Fatalf("error when reading config.yaml: err = %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("error occured while reading configuration file: err = %s", err)
	}
	validate := validator.New()
	err := validate.Struct(&config)
	if err != nil {
		if _, ok := err.(*validator.InvalidValidationError); ok {
			log.Printf("unable to validate config: err = %s", err)
		}

		log.Printf("encountered validation errors:\n")

		for _, err := range err.(validator.ValidationErrors) {
			fmt.Printf("\t%s\n", err.Error())
		}

		fmt.Println("Check your configuration file and try again.")
		os.Exit(1)
	}

	return &config
}
