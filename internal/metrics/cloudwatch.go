package metrics

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	namespace                = "MAGDA/Harmony"
	httpStatusServerError    = 500
	cloudwatchTimeoutSeconds = 5
)

// Client wraps CloudWatch client for custom metrics
type Client struct {
	client      *cloudwatch.Client
	enabled     bool
	environment string
}

// NewClient creates a new CloudWatch metrics client. Metrics are only sent in
// production; elsewhere the client is a no-op.
func NewClient(ctx context.Context, environment string) (*Client, error) {
	if environment != "production" {
		log.Printf("📊 CloudWatch Metrics: DISABLED (environment: %s)", environment)
		return &Client{
			enabled:     false,
			environment: environment,
		}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		log.Printf("⚠️  Failed to load AWS config for CloudWatch: %v", err)
		return &Client{enabled: false, environment: environment}, nil
	}

	client := cloudwatch.NewFromConfig(cfg)
	log.Printf("📊 CloudWatch Metrics: ✅ ENABLED (namespace: %s)", namespace)

	return &Client{
		client:      client,
		enabled:     true,
		environment: environment,
	}, nil
}

// Enabled reports whether metrics are being sent
func (m *Client) Enabled() bool {
	return m != nil && m.enabled
}

// RecordAPIRequest records an API request metric
func (m *Client) RecordAPIRequest(endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		metricName := "APIRequests"
		if statusCode >= httpStatusServerError {
			metricName = "APIErrors"
		}

		dimensions := m.dimensions("Endpoint", endpoint)

		if err := m.putMetric(ctx, metricName, 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record %s metric: %v", metricName, err)
		}

		latencyMs := float64(duration.Milliseconds())
		if err := m.putMetric(ctx, "APILatency", latencyMs, types.StandardUnitMilliseconds, dimensions); err != nil {
			log.Printf("Failed to record APILatency metric: %v", err)
		}
	}()
}

// RecordComposition records one composition: its latency, how many sections
// it produced and how many needed relaxed constraints or the uniform fallback.
func (m *Client) RecordComposition(mode string, sections, relaxed, fallbacks int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := m.dimensions("Mode", mode)

		if err := m.putMetric(ctx, "Compositions", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record Compositions metric: %v", err)
		}
		if err := m.putMetric(ctx, "CompositionLatency", float64(duration.Microseconds()), types.StandardUnitMicroseconds, dimensions); err != nil {
			log.Printf("Failed to record CompositionLatency metric: %v", err)
		}
		if err := m.putMetric(ctx, "Sections", float64(sections), types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record Sections metric: %v", err)
		}
		if relaxed > 0 {
			if err := m.putMetric(ctx, "RelaxedSections", float64(relaxed), types.StandardUnitCount, dimensions); err != nil {
				log.Printf("Failed to record RelaxedSections metric: %v", err)
			}
		}
		if fallbacks > 0 {
			if err := m.putMetric(ctx, "FallbackSections", float64(fallbacks), types.StandardUnitCount, dimensions); err != nil {
				log.Printf("Failed to record FallbackSections metric: %v", err)
			}
		}
	}()
}

// RecordRender records a MIDI render attempt
func (m *Client) RecordRender(success bool, size int) {
	if !m.Enabled() {
		return
	}

	go func() {
		ctx := context.Background()
		dimensions := m.dimensions("Success", strconv.FormatBool(success))
		if err := m.putMetric(ctx, "MIDIRenders", 1, types.StandardUnitCount, dimensions); err != nil {
			log.Printf("Failed to record MIDIRenders metric: %v", err)
		}
		if success {
			if err := m.putMetric(ctx, "MIDIBytes", float64(size), types.StandardUnitBytes, dimensions); err != nil {
				log.Printf("Failed to record MIDIBytes metric: %v", err)
			}
		}
	}()
}

func (m *Client) dimensions(name, value string) []types.Dimension {
	return []types.Dimension{
		{
			Name:  aws.String(name),
			Value: aws.String(value),
		},
		{
			Name:  aws.String("Environment"),
			Value: aws.String(m.environment),
		},
	}
}

// putMetric sends a metric to CloudWatch
func (m *Client) putMetric(
	ctx context.Context,
	metricName string,
	value float64,
	unit types.StandardUnit,
	dimensions []types.Dimension,
) error {
	if !m.enabled || m.client == nil {
		return nil
	}

	cwCtx, cancel := context.WithTimeout(ctx, cloudwatchTimeoutSeconds*time.Second)
	defer cancel()

	_, err := m.client.PutMetricData(cwCtx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: dimensions,
			},
		},
	})

	return err
}
