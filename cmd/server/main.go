// Command server exposes the card payment adapter over HTTP.
//
// POST /payments runs a record through the adapter and returns the receipt;
// GET /payments/summary aggregates everything processed so far. The token
// backend's transcript lines go to stdout, diagnostics and traces to stderr.
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/yourorg/payment-adapter/internal/config"
	"github.com/yourorg/payment-adapter/internal/gateway"
	"github.com/yourorg/payment-adapter/internal/logging"
	"github.com/yourorg/payment-adapter/internal/monitor"
	"github.com/yourorg/payment-adapter/internal/payment"
	"github.com/yourorg/payment-adapter/internal/policy"
	"github.com/yourorg/payment-adapter/internal/reporting"
	"github.com/yourorg/payment-adapter/internal/tokenapi"
)

//go:embed payment_request_schema.json
var paymentRequestSchema []byte

// paymentRequest is the wire form of a payment record. Values are carried
// into the record verbatim; the schema checks shape, not field formats.
type paymentRequest struct {
	CardNumber string  `json:"card_number"`
	Expiry     string  `json:"expiry"`
	CVV        string  `json:"cvv"`
	Amount     float64 `json:"amount"`
}

// paymentResponse is the receipt plus the advisory review annotation.
type paymentResponse struct {
	gateway.Receipt
	FlaggedForReview bool   `json:"flaggedForReview"`
	ReviewReason     string `json:"reviewReason,omitempty"`
}

// server bundles the wired components behind the HTTP handlers.
type server struct {
	logger     *zap.Logger
	port       gateway.CardPaymentPort
	contract   *monitor.ContractMonitor
	reviews    *policy.ReviewPolicyEnforcer
	recorder   *reporting.Recorder
	summarizer *reporting.Summarizer
}

func newServer(cfg config.Config, logger *zap.Logger) (*server, error) {
	contract, err := monitor.NewContractMonitor(paymentRequestSchema)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize contract monitor: %w", err)
	}

	// govaluate does not parse exponent notation; the limit must render in
	// plain decimal or limits of a million and up fail to compile.
	limit := strconv.FormatFloat(cfg.ReviewAmountLimit, 'f', -1, 64)
	reviews, err := policy.NewReviewPolicyEnforcer([]policy.ReviewRule{
		{
			ID:         "large_amount",
			Expression: "amount >= " + limit,
			Priority:   1,
			Reason:     "amount at or above the review limit",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize review policy enforcer: %w", err)
	}

	tokens := tokenapi.NewTokenAPI(os.Stdout, logger.Named("tokenapi"))
	port := gateway.NewPaymentAdapter(tokens, logger.Named("gateway"))

	return &server{
		logger:     logger,
		port:       port,
		contract:   contract,
		reviews:    reviews,
		recorder:   reporting.NewRecorder(),
		summarizer: reporting.NewSummarizer(),
	}, nil
}

func (s *server) processPaymentHandler(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	valid, violations, err := s.contract.Validate(body)
	if err != nil {
		s.logger.Error("contract validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": monitor.FormatErrors(violations)})
		return
	}

	var req paymentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	rec := payment.Record{
		CardNumber: req.CardNumber,
		Expiry:     req.Expiry,
		CVV:        req.CVV,
		Amount:     req.Amount,
	}

	receipt, err := s.port.ProcessPayment(c.Request.Context(), rec)
	if err != nil {
		s.recorder.Record(reporting.Entry{
			Timestamp:    time.Now().UTC(),
			Status:       reporting.StatusFailure,
			Amount:       req.Amount,
			ErrorMessage: err.Error(),
		})
		if errors.Is(err, gateway.ErrCardNumberTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed: " + err.Error()})
			return
		}
		s.logger.Error("payment processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing payment: " + err.Error()})
		return
	}

	decision, err := s.reviews.Evaluate(receipt)
	if err != nil {
		// A policy error never fails an already charged payment.
		s.logger.Warn("review policy evaluation failed", zap.Error(err))
		decision = policy.ReviewDecision{}
	}
	if decision.FlagForReview {
		receipt.Details["review_rule"] = decision.RuleID
		receipt.Details["review_reason"] = decision.Reason
	}

	s.recorder.Record(reporting.Entry{
		Timestamp:        receipt.ChargedAt,
		PaymentID:        receipt.PaymentID,
		Status:           reporting.StatusSuccess,
		Amount:           receipt.Amount,
		FlaggedForReview: decision.FlagForReview,
	})

	c.JSON(http.StatusOK, paymentResponse{
		Receipt:          receipt,
		FlaggedForReview: decision.FlagForReview,
		ReviewReason:     decision.Reason,
	})
}

func (s *server) paymentSummaryHandler(c *gin.Context) {
	report, err := s.summarizer.Summarize(s.recorder.Entries())
	if err != nil {
		s.logger.Error("summary generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating summary: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

func setupRouter(s *server) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("payment-adapter"))
	router.Use(logging.GinMiddleware(s.logger))

	router.POST("/payments", s.processPaymentHandler)
	router.GET("/payments/summary", s.paymentSummaryHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

// initTracing installs a tracer provider that pretty-prints finished spans
// to stderr when enabled, and returns its shutdown func. When disabled the
// default no-op provider stays in place and the shutdown func does nothing.
func initTracing(enabled bool) (func(context.Context) error, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(os.Stderr),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", "payment-adapter"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(logging.Config{
		Service: "payment-adapter",
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logging.Sync(logger)

	shutdownTracing, err := initTracing(cfg.TracingEnabled)
	if err != nil {
		logger.Fatal("failed to initialize tracing", zap.Error(err))
	}

	srv, err := newServer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to wire server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: setupRouter(srv),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server started", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped unexpectedly", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
