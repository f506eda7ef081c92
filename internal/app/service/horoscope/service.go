package horoscope

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

var (
	ErrInvalidSign    = errors.New("invalid zodiac sign")
	ErrInvalidDateKey = errors.New("invalid date key")
)

var dateKeyPatterns = map[models.PredictionType]*regexp.Regexp{
	models.PredictionTypeDaily:   regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	models.PredictionTypeWeekly:  regexp.MustCompile(`^\d{4}-W\d{2}$`),
	models.PredictionTypeMonthly: regexp.MustCompile(`^\d{4}-\d{2}$`),
	models.PredictionTypeYearly:  regexp.MustCompile(`^\d{4}$`),
}

// Service serves horoscope predictions and promotional banners. Predictions
// are generated on first request and served from the cache table afterwards,
// so a given (sign, type, date key) always reads the same.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// Prediction returns the cached prediction for the key, generating and
// persisting one if absent. Concurrent first requests race on the unique
// index; the loser discards its candidate and reads the winner's row.
func (s *Service) Prediction(ctx context.Context, sign zodiac.Sign, ptype models.PredictionType, dateKey string) (*models.Prediction, error) {
	if !zodiac.Valid(sign) {
		return nil, ErrInvalidSign
	}
	if pattern, ok := dateKeyPatterns[ptype]; !ok || !pattern.MatchString(dateKey) {
		return nil, ErrInvalidDateKey
	}

	var cached models.Prediction
	err := s.db.WithContext(ctx).
		Where("sign = ? AND prediction_type = ? AND date_key = ?", sign, ptype, dateKey).
		First(&cached).Error
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := s.newPrediction(sign, ptype, dateKey)
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sign"}, {Name: "prediction_type"}, {Name: "date_key"}},
		DoNothing: true,
	}).Create(candidate)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to store prediction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Lost the insert race; the winner's row is authoritative.
		if err := s.db.WithContext(ctx).
			Where("sign = ? AND prediction_type = ? AND date_key = ?", sign, ptype, dateKey).
			First(&cached).Error; err != nil {
			return nil, err
		}
		return &cached, nil
	}

	logctx.FromCtx(ctx, s.log).Infow("prediction generated",
		"sign", sign, "type", ptype, "date_key", dateKey)
	return candidate, nil
}

func (s *Service) newPrediction(sign zodiac.Sign, ptype models.PredictionType, dateKey string) *models.Prediction {
	p := &models.Prediction{
		Sign:           sign,
		PredictionType: ptype,
		DateKey:        dateKey,
	}
	if ptype == models.PredictionTypeDaily {
		gen := generateDaily(sign)
		p.Text = gen.Text
		p.LuckyNumber = &gen.LuckyNumber
		p.LuckyColor = gen.LuckyColor
		p.Mood = gen.Mood
		p.LoveScore = &gen.Love
		p.CareerScore = &gen.Career
		p.HealthScore = &gen.Health
		return p
	}
	p.Text = generateExtended(string(ptype))
	p.Premium = true
	return p
}

// Banners lists active banners in creation order, seeding the default set
// when the table has none.
func (s *Service) Banners(ctx context.Context) ([]models.Banner, error) {
	banners, err := s.activeBanners(ctx)
	if err != nil {
		return nil, err
	}
	if len(banners) > 0 {
		return banners, nil
	}
	if err := s.seedBanners(ctx); err != nil {
		return nil, err
	}
	return s.activeBanners(ctx)
}

func (s *Service) activeBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at").
		Find(&banners).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch banners: %w", err)
	}
	return banners, nil
}

func (s *Service) seedBanners(ctx context.Context) error {
	defaults := []models.Banner{
		{
			BannerID: "premium_weekly",
			Title:    "✨ Unlock your Weekly Horoscope",
			Subtitle: "Deeper guidance awaits",
			Bullets:  mustJSON([]string{"See career highlights", "Navigate relationships", "Make smarter moves"}),
			Target:   "premium", PremiumRequired: true, IsActive: true,
		},
		{
			BannerID: "compat_leo",
			Title:    "💖 Who's your best match?",
			Subtitle: "Try compatibility with Leo",
			Bullets:  mustJSON([]string{"Instant chemistry score", "Actionable tips"}),
			Target:   "compat:leo", PremiumRequired: false, IsActive: true,
		},
		{
			BannerID: "monthly_upgrade",
			Title:    "🌙 Monthly Insights Available",
			// {PRICE} is substituted client side from the products endpoint.
			Subtitle: "Get {PRICE}/month for complete guidance",
			Bullets:  mustJSON([]string{"Full monthly forecast", "Lucky dates revealed", "Relationship advice"}),
			Target:   "premium", PremiumRequired: true, IsActive: true,
		},
		{
			BannerID: "traits_explore",
			Title:    "🔮 Discover Your Traits",
			Subtitle: "Learn what makes you unique",
			Bullets:  mustJSON([]string{"Personality insights", "Strengths & weaknesses", "Element guidance"}),
			Target:   "traits:aries", PremiumRequired: false, IsActive: true,
		},
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "banner_id"}},
		DoNothing: true,
	}).Create(&defaults)
	if res.Error != nil {
		return fmt.Errorf("failed to seed banners: %w", res.Error)
	}
	logctx.FromCtx(ctx, s.log).Infow("default banners seeded", "count", res.RowsAffected)
	return nil
}
