// Package serving exposes a read-only HTTP API for inspecting a measurement
// registry once a benchmark run has finished. The registry itself is not safe
// for concurrent use, so the server must not run while measurements are still
// being recorded.
package serving

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackwhelpton/fasthttp-routing/v2"
	"github.com/valyala/fasthttp"

	"github.com/kcz17/bmark"
)

type APIServer struct {
	Registry *bmark.Registry
}

func (s *APIServer) ListenAndServe(addr string) error {
	router := routing.New()

	router.Get("/last", s.lastTimeHandler())
	router.Get("/times/<id>", s.timesHandler())
	router.Get("/stats/<id>", s.statsHandler())
	router.Get("/sum", s.sumHandler())
	router.Delete("/times", s.clearTimesHandler())

	return fasthttp.ListenAndServe(addr, router.HandleRequest)
}

func (s *APIServer) lastTimeHandler() routing.Handler {
	return func(c *routing.Context) error {
		last, ok := s.Registry.LastTime()
		if !ok {
			return routing.NewHTTPError(fasthttp.StatusNotFound, "no measurement recorded yet")
		}
		return c.Write(fmt.Sprintf("%f\n", last))
	}
}

func (s *APIServer) timesHandler() routing.Handler {
	return func(c *routing.Context) error {
		id := c.Param("id")
		samples, ok := s.Registry.Times(id)
		if !ok {
			return routing.NewHTTPError(fasthttp.StatusNotFound, fmt.Sprintf("no samples for id %q", id))
		}

		b, err := json.Marshal(samples)
		if err != nil {
			return fmt.Errorf("could not marshal samples: err = %w", err)
		}
		return c.Write(b)
	}
}

func (s *APIServer) statsHandler() routing.Handler {
	return func(c *routing.Context) error {
		id := c.Param("id")

		percentile := 95.0
		if arg := string(c.QueryArgs().Peek("percentile")); arg != "" {
			parsed, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return routing.NewHTTPError(fasthttp.StatusBadRequest, "percentile must be a number")
			}
			percentile = parsed
		}

		avg, err := s.Registry.Average(id)
		if err != nil {
			return routing.NewHTTPError(fasthttp.StatusNotFound, err.Error())
		}
		median, err := s.Registry.Median(id)
		if err != nil {
			return routing.NewHTTPError(fasthttp.StatusNotFound, err.Error())
		}
		stdDev, err := s.Registry.StdDev(id)
		if err != nil {
			return routing.NewHTTPError(fasthttp.StatusNotFound, err.Error())
		}
		p, err := s.Registry.Percentile(id, percentile, true)
		if err != nil {
			return routing.NewHTTPError(fasthttp.StatusBadRequest, err.Error())
		}

		response := &struct {
			Average    float64
			Median     float64
			Percentile float64
			StdDev     float64
		}{
			Average:    avg,
			Median:     median,
			Percentile: p,
			StdDev:     stdDev,
		}

		b, err := json.Marshal(response)
		if err != nil {
			return fmt.Errorf("could not marshal statistics: err = %w", err)
		}
		return c.Write(b)
	}
}

func (s *APIServer) sumHandler() routing.Handler {
	return func(c *routing.Context) error {
		sum, ok := s.Registry.TimeSum(queriedIDs(c)...)
		if !ok {
			return routing.NewHTTPError(fasthttp.StatusNotFound, "no samples recorded for the requested ids")
		}
		return c.Write(fmt.Sprintf("%f\n", sum))
	}
}

func (s *APIServer) clearTimesHandler() routing.Handler {
	return func(c *routing.Context) error {
		s.Registry.ClearTimes(queriedIDs(c)...)
		return c.Write("times cleared\n")
	}
}

// queriedIDs collects the repeatable id query argument; an empty result means
// the whole store.
func queriedIDs(c *routing.Context) []string {
	var ids []string
	for _, id := range c.QueryArgs().PeekMulti("id") {
		ids = append(ids, string(id))
	}
	return ids
}
