package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/roadtrip-genie/app/middleware"
	"github.com/FACorreiaa/roadtrip-genie/app/observability/metrics"
	"github.com/FACorreiaa/roadtrip-genie/config"
	"github.com/FACorreiaa/roadtrip-genie/internal/types"
)

const defaultTokenTTL = 30 * time.Minute

var _ ExportService = (*ExportServiceImpl)(nil)

type ExportService interface {
	GeneratePDF(ctx context.Context, itineraryID string) ([]byte, error)
	IssueDownloadToken(ctx context.Context, itineraryID string) (*types.DownloadToken, error)
}

type ItineraryReader interface {
	GetByID(ctx context.Context, itineraryID string) (*types.ItineraryResponse, error)
}

type ExportServiceImpl struct {
	logger         *slog.Logger
	itineraries    ItineraryReader
	outputDir      string
	requirePayment bool
	secret         []byte
	tokenTTL       time.Duration
	now            func() time.Time
}

func NewExportService(itineraries ItineraryReader, exportCfg config.ExportConfig, securityCfg config.SecurityConfig, logger *slog.Logger) *ExportServiceImpl {
	ttl := time.Duration(securityCfg.AccessTokenExpireMinutes) * time.Minute
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &ExportServiceImpl{
		logger:         logger,
		itineraries:    itineraries,
		outputDir:      exportCfg.PDFOutputDir,
		requirePayment: exportCfg.RequirePayment,
		secret:         []byte(securityCfg.SecretKey),
		tokenTTL:       ttl,
		now:            time.Now,
	}
}

// FileName is the attachment name of an itinerary's PDF.
func FileName(itineraryID string) string {
	return fmt.Sprintf("roadtrip_%s.pdf", filepath.Base(itineraryID))
}

func (s *ExportServiceImpl) GeneratePDF(ctx context.Context, itineraryID string) ([]byte, error) {
	ctx, span := otel.Tracer("ExportService").Start(ctx, "GeneratePDF", trace.WithAttributes(
		attribute.String("itinerary.id", itineraryID),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GeneratePDF"), slog.String("itinerary_id", itineraryID))

	doc, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "itinerary lookup failed")
		return nil, err
	}

	pdf, err := RenderPDF(doc)
	if err != nil {
		l.ErrorContext(ctx, "Failed to render PDF", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}

	if s.outputDir != "" {
		if err = s.writeCopy(itineraryID, pdf); err != nil {
			l.WarnContext(ctx, "Failed to store PDF copy", slog.Any("error", err))
		}
	}

	metrics.Get().PDFExportsTotal.Add(ctx, 1)
	span.SetAttributes(attribute.Int("pdf.bytes", len(pdf)))
	span.SetStatus(codes.Ok, "PDF rendered")
	l.InfoContext(ctx, "PDF rendered", slog.Int("bytes", len(pdf)))
	return pdf, nil
}

func (s *ExportServiceImpl) writeCopy(itineraryID string, pdf []byte) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	return os.WriteFile(filepath.Join(s.outputDir, FileName(itineraryID)), pdf, 0o644)
}

func (s *ExportServiceImpl) IssueDownloadToken(ctx context.Context, itineraryID string) (*types.DownloadToken, error) {
	doc, err := s.itineraries.GetByID(ctx, itineraryID)
	if err != nil {
		return nil, err
	}
	if s.requirePayment && doc.PaymentStatus != types.PaymentStatusCompleted {
		return nil, types.ErrPaymentRequired
	}

	token, expiresAt, err := appMiddleware.IssueDownloadToken(s.secret, itineraryID, s.tokenTTL, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to sign download token: %w", err)
	}
	return &types.DownloadToken{
		Token:     token,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	}, nil
}
