package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
)

var ErrSessionNotFound = errors.New("session not found")

// noteworthyEvents get an info log line on ingestion.
var noteworthyEvents = map[string]bool{
	"purchase_success":    true,
	"paywall_shown":       true,
	"upgrade_cta_clicked": true,
}

// counterColumns maps event types to the session counter they bump.
var counterColumns = map[string]string{
	"screen_view":              "screen_views",
	"tab_selected":             "tab_switches",
	"banner_clicked":           "banner_clicks",
	"paywall_shown":            "paywall_views",
	"compatibility_calculated": "compatibility_calculations",
	"upgrade_cta_clicked":      "upgrade_attempts",
	"purchase_initiated":       "purchase_attempts",
	"purchase_success":         "successful_purchases",
}

// Service ingests client analytics events and maintains per-session counter
// aggregates.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Event is one inbound analytics record from the app.
type Event struct {
	Event      string         `json:"event"`
	Timestamp  int64          `json:"ts"`
	SessionID  string         `json:"session_id"`
	InstallID  string         `json:"install_id"`
	AppVersion string         `json:"app_version"`
	UserProps  map[string]any `json:"user_props"`
	Params     map[string]any `json:"params"`
}

func (e *Event) valid() bool {
	return e.Event != "" && e.Timestamp != 0 && e.SessionID != "" &&
		e.InstallID != "" && e.AppVersion != ""
}

// Ingest stores a batch of events. Events are processed independently: a
// malformed or failing event is logged and skipped, never failing the batch.
// Returns the number of events actually stored.
func (s *Service) Ingest(ctx context.Context, events []Event, userID *uint, ipAddress, userAgent string) int {
	log := logctx.FromCtx(ctx, s.log)

	processed := 0
	for _, ev := range events {
		if !ev.valid() {
			log.Warnw("analytics event missing required fields", "event", ev.Event)
			continue
		}
		if err := s.storeEvent(ctx, ev, userID, ipAddress, userAgent); err != nil {
			log.Errorw("failed to store analytics event", "event", ev.Event, "err", err)
			continue
		}
		processed++

		if err := s.bumpSession(ctx, ev, userID); err != nil {
			log.Errorw("failed to update session metrics", "session_id", ev.SessionID, "err", err)
		}
		if noteworthyEvents[ev.Event] {
			log.Infow("analytics event", "event", ev.Event, "session_id", ev.SessionID)
		}
	}
	return processed
}

func (s *Service) storeEvent(ctx context.Context, ev Event, userID *uint, ipAddress, userAgent string) error {
	row := &models.AnalyticsEvent{
		Event:      ev.Event,
		Timestamp:  ev.Timestamp,
		SessionID:  ev.SessionID,
		InstallID:  ev.InstallID,
		AppVersion: ev.AppVersion,
		UserID:     userID,
		UserProps:  toJSON(ev.UserProps),
		Params:     toJSON(ev.Params),
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	return s.db.WithContext(ctx).Create(row).Error
}

// bumpSession get-or-creates the session aggregate and advances its counters
// and end time.
func (s *Service) bumpSession(ctx context.Context, ev Event, userID *uint) error {
	eventTime := time.UnixMilli(ev.Timestamp).UTC()

	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoNothing: true,
	}).Create(&models.SessionMetrics{
		SessionID: ev.SessionID,
		UserID:    userID,
		StartTime: eventTime,
	})
	if res.Error != nil {
		return fmt.Errorf("failed to create session metrics: %w", res.Error)
	}

	var session models.SessionMetrics
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", ev.SessionID).
		First(&session).Error; err != nil {
		return err
	}

	updates := map[string]interface{}{
		"end_time":         eventTime,
		"duration_seconds": int(eventTime.Sub(session.StartTime).Seconds()),
	}
	if column, ok := counterColumns[ev.Event]; ok {
		updates[column] = gorm.Expr(column+" + ?", 1)
	}
	return s.db.WithContext(ctx).Model(&session).Updates(updates).Error
}

// EventSummary is the trimmed event shape returned by session lookups.
type EventSummary struct {
	Event     string         `json:"event"`
	Timestamp int64          `json:"timestamp"`
	Params    datatypes.JSON `json:"params"`
}

// Session returns the aggregate metrics for a session plus its 20 most
// recent events.
func (s *Service) Session(ctx context.Context, sessionID string) (*models.SessionMetrics, []EventSummary, error) {
	var session models.SessionMetrics
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var events []models.AnalyticsEvent
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp desc").
		Limit(20).
		Find(&events).Error; err != nil {
		return nil, nil, err
	}

	summaries := lo.Map(events, func(ev models.AnalyticsEvent, _ int) EventSummary {
		return EventSummary{Event: ev.Event, Timestamp: ev.Timestamp, Params: ev.Params}
	})
	return &session, summaries, nil
}
