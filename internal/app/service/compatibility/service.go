package compatibility

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

var ErrInvalidSign = errors.New("invalid zodiac sign")

// Service scores zodiac sign pairings. Each pair is generated once and
// cached under its sorted key, so (leo, aries) and (aries, leo) share a row.
type Service struct {
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{log: log, db: db}
}

// sortPair normalizes a pair to its stored order (lexicographic).
func sortPair(a, b zodiac.Sign) (zodiac.Sign, zodiac.Sign) {
	if b < a {
		return b, a
	}
	return a, b
}

// Pair returns the cached compatibility row for the two signs, generating
// one on first request. Sign order does not matter.
func (s *Service) Pair(ctx context.Context, signA, signB zodiac.Sign) (*models.CompatibilityPair, error) {
	if !zodiac.Valid(signA) || !zodiac.Valid(signB) {
		return nil, ErrInvalidSign
	}
	a, b := sortPair(signA, signB)

	var cached models.CompatibilityPair
	err := s.db.WithContext(ctx).
		Where("sign_a = ? AND sign_b = ?", a, b).
		First(&cached).Error
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	gen := generatePair(a, b)
	candidate := &models.CompatibilityPair{
		SignA:           a,
		SignB:           b,
		OverallScore:    gen.Overall,
		LoveScore:       gen.Love,
		CareerScore:     gen.Career,
		FriendshipScore: gen.Friendship,
		PreviewText:     gen.PreviewText,
		PremiumText:     gen.PremiumText,
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "sign_a"}, {Name: "sign_b"}},
		DoNothing: true,
	}).Create(candidate)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to store compatibility pair: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		if err := s.db.WithContext(ctx).
			Where("sign_a = ? AND sign_b = ?", a, b).
			First(&cached).Error; err != nil {
			return nil, err
		}
		return &cached, nil
	}

	logctx.FromCtx(ctx, s.log).Infow("compatibility pair generated", "sign_a", a, "sign_b", b)
	return candidate, nil
}
