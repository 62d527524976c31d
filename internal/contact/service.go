// Package contact turns contact form submissions into archived inquiries and
// notification emails.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paladino/propiedades-web/internal/cache"
	"github.com/paladino/propiedades-web/internal/gateway"
	"github.com/paladino/propiedades-web/internal/logger"
	"github.com/paladino/propiedades-web/internal/mailer"
	"github.com/paladino/propiedades-web/internal/metrics"
	"github.com/paladino/propiedades-web/internal/models"
	"github.com/paladino/propiedades-web/internal/utils"
	"github.com/rs/zerolog"
)

const (
	DefaultRecipient     = "info@paladinopropiedades.com.ar"
	DefaultSubject       = "Nueva consulta desde la web"
	DefaultFromName      = "Web Paladino Propiedades"
	DefaultRecipientName = "Paladino Propiedades"
)

var (
	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha answer is incorrect")
)

// SiteSource provides the site configuration that drives recipient, subject
// and logo. *gateway.Gateway satisfies it.
type SiteSource interface {
	FetchSiteConfiguration(ctx context.Context) (*models.SiteConfiguration, gateway.Result)
	SiteDisplay(cfg *models.SiteConfiguration) gateway.SiteDisplay
}

// Archive persists inquiries. *storage.Storage satisfies it.
type Archive interface {
	SaveInquiry(ctx context.Context, item *models.Inquiry) error
}

type Config struct {
	FromAddress    string
	FromName       string
	Recipient      string
	DedupTTL       time.Duration
	RequireCaptcha bool
}

// Outcome describes an accepted submission.
type Outcome struct {
	ID        string
	Duplicate bool
}

type Service struct {
	cfg     Config
	site    SiteSource
	sender  mailer.Sender
	dedup   cache.Store
	archive Archive
	log     zerolog.Logger
	now     func() time.Time
}

func NewService(cfg Config, site SiteSource, sender mailer.Sender, dedup cache.Store, archive Archive) *Service {
	if cfg.FromAddress == "" {
		cfg.FromAddress = DefaultRecipient
	}
	if cfg.FromName == "" {
		cfg.FromName = DefaultFromName
	}
	if cfg.Recipient == "" {
		cfg.Recipient = DefaultRecipient
	}
	if cfg.DedupTTL <= 0 {
		cfg.DedupTTL = 10 * time.Minute
	}
	return &Service{
		cfg:     cfg,
		site:    site,
		sender:  sender,
		dedup:   dedup,
		archive: archive,
		log:     logger.Component("contact"),
		now:     time.Now,
	}
}

// CheckCaptcha applies the captcha policy to an already validated request.
func (s *Service) CheckCaptcha(req Request) error {
	if req.Captcha == nil {
		if s.cfg.RequireCaptcha {
			return ErrCaptchaRequired
		}
		return nil
	}
	if !req.Captcha.Solved() {
		return ErrCaptchaInvalid
	}
	return nil
}

// Submit archives the inquiry and sends the notification email. The request
// must already have passed field validation. A repeat of the same email and
// message within the dedup window is acknowledged without sending again.
func (s *Service) Submit(ctx context.Context, req Request) (Outcome, error) {
	if err := s.CheckCaptcha(req); err != nil {
		metrics.ContactSubmissions.WithLabelValues("rejected").Inc()
		return Outcome{}, err
	}

	log := s.log
	if id := logger.RequestID(ctx); id != "" {
		log = log.With().Str("request_id", id).Logger()
	}

	key := utils.Hash(req.Email, req.Mensaje)
	claimed, err := s.dedup.Claim(ctx, key, s.cfg.DedupTTL)
	if err != nil {
		// the store being down must not block inquiries
		log.Warn().Err(err).Msg("Dedup store unavailable")
		claimed = true
	}
	if !claimed {
		metrics.ContactSubmissions.WithLabelValues(models.InquiryDuplicate).Inc()
		log.Info().Str("email", req.Email).Msg("Duplicate inquiry ignored")
		return Outcome{Duplicate: true}, nil
	}

	siteCfg, _ := s.site.FetchSiteConfiguration(ctx)
	display := s.site.SiteDisplay(siteCfg)

	recipient, subject := s.cfg.Recipient, DefaultSubject
	if siteCfg != nil {
		if siteCfg.EmailDeContacto != "" {
			recipient = siteCfg.EmailDeContacto
		}
		if siteCfg.TextoDeContactoWeb != "" {
			subject = siteCfg.TextoDeContactoWeb
		}
	}

	inquiry := &models.Inquiry{
		ID:         uuid.NewString(),
		Nombre:     req.Nombre,
		Email:      req.Email,
		Telefono:   req.Telefono,
		Mensaje:    req.Mensaje,
		Tipo:       req.Tipo,
		TipoLabel:  TipoLabel(req.Tipo),
		Recipient:  recipient,
		Subject:    subject,
		Status:     models.InquiryPending,
		Provider:   s.sender.Name(),
		ReceivedAt: s.now().UTC(),
	}
	s.save(ctx, log, inquiry)

	htmlBody, textBody, err := mailer.RenderInquiry(mailer.InquiryEmail{
		Nombre:    inquiry.Nombre,
		Email:     inquiry.Email,
		Telefono:  inquiry.Telefono,
		TipoLabel: inquiry.TipoLabel,
		Mensaje:   inquiry.Mensaje,
		LogoURL:   display.Logo,
	})
	if err == nil {
		err = s.sender.Send(ctx, mailer.Message{
			FromAddress:    s.cfg.FromAddress,
			FromName:       s.cfg.FromName,
			ToAddress:      recipient,
			ToName:         DefaultRecipientName,
			ReplyToAddress: inquiry.Email,
			ReplyToName:    inquiry.Nombre,
			Subject:        subject,
			HTMLBody:       htmlBody,
			TextBody:       textBody,
		})
	}

	if err != nil {
		if relErr := s.dedup.Release(ctx, key); relErr != nil {
			log.Warn().Err(relErr).Msg("Failed to release dedup key")
		}
		inquiry.Status = models.InquiryFailed
		inquiry.Error = err.Error()
		s.save(ctx, log, inquiry)
		metrics.ContactSubmissions.WithLabelValues(models.InquiryFailed).Inc()
		return Outcome{ID: inquiry.ID}, fmt.Errorf("failed to send inquiry %s: %w", inquiry.ID, err)
	}

	inquiry.Status = models.InquirySent
	inquiry.SentAt = s.now().UTC()
	s.save(ctx, log, inquiry)
	metrics.ContactSubmissions.WithLabelValues(models.InquirySent).Inc()

	log.Info().
		Str("inquiry_id", inquiry.ID).
		Str("provider", inquiry.Provider).
		Str("recipient", recipient).
		Msg("Inquiry sent")

	return Outcome{ID: inquiry.ID}, nil
}

func (s *Service) save(ctx context.Context, log zerolog.Logger, inquiry *models.Inquiry) {
	if s.archive == nil {
		return
	}
	if err := s.archive.SaveInquiry(ctx, inquiry); err != nil {
		log.Error().Err(err).Str("inquiry_id", inquiry.ID).Msg("Failed to archive inquiry")
	}
}
