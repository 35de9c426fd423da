package e2e

import (
	"context"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
)

// InfluxClient wraps the official InfluxDB v2 client for the end to end
// suite: it runs flux queries against the bootstrapped test instance and
// hides token/org plumbing.
type InfluxClient struct {
	client influxdb2.Client
	query  api.QueryAPI
}

// NewInfluxClient creates a query client for the given instance. The org and
// bucket are expected to exist already; the container bootstraps them.
func NewInfluxClient(url, org, token string) *InfluxClient {
	c := influxdb2.NewClient(url, token)
	return &InfluxClient{client: c, query: c.QueryAPI(org)}
}

// CountRows runs a Flux query and returns the number of rows it yields.
func (c *InfluxClient) CountRows(ctx context.Context, flux string) (int, error) {
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	n := 0
	for res.Next() {
		n++
	}
	return n, res.Err()
}

// SumValues runs a Flux query and sums the _value column of every row.
func (c *InfluxClient) SumValues(ctx context.Context, flux string) (float64, error) {
	res, err := c.query.Query(ctx, flux)
	if err != nil {
		return 0, err
	}
	defer res.Close()
	var sum float64
	for res.Next() {
		if v, ok := res.Record().Value().(float64); ok {
			sum += v
		}
	}
	return sum, res.Err()
}

// Close releases the underlying client resources.
func (c *InfluxClient) Close() { c.client.Close() }
