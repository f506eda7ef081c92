package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salamene/horoscope-backend/internal/models"
	"github.com/salamene/horoscope-backend/pkg/config"
	"github.com/salamene/horoscope-backend/pkg/logctx"
	"github.com/salamene/horoscope-backend/pkg/token"
	"github.com/salamene/horoscope-backend/pkg/tool"
	"github.com/salamene/horoscope-backend/pkg/zodiac"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidProvider = errors.New("invalid provider")

	errRaceLost = errors.New("social account insert race lost")
)

var validProviders = map[string]bool{
	"apple": true, "google": true, "facebook": true, "guest": true,
}

// Service owns user identity: social signup, token issuance/verification,
// profile updates, and the premium entitlement lifecycle.
type Service struct {
	cfg *config.Config
	log *zap.SugaredLogger
	db  *gorm.DB
}

func NewService(cfg *config.Config, log *zap.SugaredLogger, db *gorm.DB) *Service {
	return &Service{cfg: cfg, log: log, db: db}
}

// providerIdentity truncates the opaque provider token into the stored
// identity key, matching the column width.
func providerIdentity(providerToken string) string {
	if len(providerToken) > 50 {
		return providerToken[:50]
	}
	return providerToken
}

// SignUp resolves (provider, token) to a user, creating one on first
// sign-in. Safe under concurrent first sign-ins: the social account's
// composite unique index decides the winner and the loser re-reads.
func (s *Service) SignUp(ctx context.Context, provider, providerToken string) (*models.User, bool, error) {
	if !validProviders[provider] {
		return nil, false, ErrInvalidProvider
	}

	identity := providerIdentity(providerToken)

	user, err := s.findSocialUser(ctx, provider, identity, providerToken)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	user, err = s.createSocialUser(ctx, provider, identity, providerToken)
	if errors.Is(err, errRaceLost) {
		// Another request created the account between our read and write.
		user, err = s.findSocialUser(ctx, provider, identity, providerToken)
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *Service) findSocialUser(ctx context.Context, provider, identity, providerToken string) (*models.User, error) {
	var acct models.SocialAccount
	if err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, identity).
		First(&acct).Error; err != nil {
		return nil, err
	}

	// Keep the freshest provider token on record.
	if acct.AccessToken != providerToken {
		if err := s.db.WithContext(ctx).Model(&acct).
			Update("access_token", providerToken).Error; err != nil {
			return nil, fmt.Errorf("failed to update access token: %w", err)
		}
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, acct.UserID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) createSocialUser(ctx context.Context, provider, identity, providerToken string) (*models.User, error) {
	username := tool.GenerateUsername(provider)
	user := &models.User{
		Username:           username,
		Email:              fmt.Sprintf("%s@salamene.app", username),
		SubscriptionStatus: models.SubscriptionStatusNone,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "provider_id"}},
			DoNothing: true,
		}).Create(&models.SocialAccount{
			UserID:      user.ID,
			Provider:    provider,
			ProviderID:  identity,
			AccessToken: providerToken,
		})
		if res.Error != nil {
			return fmt.Errorf("failed to create social account: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Conflict with a concurrent insert; roll back our user row.
			return errRaceLost
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logctx.FromCtx(ctx, s.log).Infow("user created", "user_id", user.ID, "provider", provider)
	return user, nil
}

// IssueTokens returns a signed access token and refresh token for the user.
func (s *Service) IssueTokens(user *models.User) (access, refresh string, err error) {
	access, err = token.Generate(user.ID, user.Username, s.cfg.JWT.Secret, s.cfg.JWT.AccessTTL())
	if err != nil {
		return "", "", fmt.Errorf("failed to sign access token: %w", err)
	}
	refresh, err = token.Generate(user.ID, user.Username, s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTTL())
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return access, refresh, nil
}

// Authenticate verifies an access token, resolves the user, and runs the
// lazy premium expiry check before handing the user back.
func (s *Service) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := token.Parse(tokenString, s.cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	return s.resolveUser(ctx, claims.UserID)
}

// AuthenticateRefresh verifies a refresh token and resolves its user.
func (s *Service) AuthenticateRefresh(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := token.Parse(tokenString, s.cfg.JWT.RefreshSecret)
	if err != nil {
		return nil, err
	}
	return s.resolveUser(ctx, claims.UserID)
}

func (s *Service) resolveUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := s.RefreshPremiumStatus(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshPremiumStatus downgrades the entitlement if its window has passed.
// Persists only the changed fields; a no-op for users whose entitlement is
// already settled.
func (s *Service) RefreshPremiumStatus(ctx context.Context, user *models.User) error {
	if user.PremiumUntil == nil || user.PremiumUntil.After(time.Now()) {
		return nil
	}
	if !user.IsPremium && user.SubscriptionStatus == models.SubscriptionStatusExpired {
		return nil
	}

	user.IsPremium = false
	user.SubscriptionStatus = models.SubscriptionStatusExpired
	if err := s.db.WithContext(ctx).Model(user).
		Select("is_premium", "subscription_status").
		Updates(map[string]interface{}{
			"is_premium":          false,
			"subscription_status": models.SubscriptionStatusExpired,
		}).Error; err != nil {
		return fmt.Errorf("failed to expire premium: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("premium expired", "user_id", user.ID)
	return nil
}

// ExtendPremium grants plan.Duration() of entitlement. A still-running
// window is stacked on; an elapsed or absent one restarts from now. This is
// the only mutation of entitlement state driven by payment.
func (s *Service) ExtendPremium(ctx context.Context, tx *gorm.DB, user *models.User, plan *models.PaymentPlan) error {
	now := time.Now()
	var until time.Time
	if user.PremiumUntil != nil && user.PremiumUntil.After(now) {
		until = user.PremiumUntil.Add(plan.Duration())
	} else {
		until = now.Add(plan.Duration())
	}

	user.IsPremium = true
	user.PremiumUntil = &until
	user.SubscriptionStatus = models.SubscriptionStatusActive
	user.SubscriptionPlan = string(plan.PlanType)

	if err := tx.WithContext(ctx).Model(user).
		Select("is_premium", "premium_until", "subscription_status", "subscription_plan").
		Updates(map[string]interface{}{
			"is_premium":          true,
			"premium_until":       until,
			"subscription_status": models.SubscriptionStatusActive,
			"subscription_plan":   string(plan.PlanType),
		}).Error; err != nil {
		return fmt.Errorf("failed to extend premium: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Infow("premium extended",
		"user_id", user.ID, "plan", plan.PlanType, "premium_until", until)
	return nil
}

// ProfileUpdate carries the PATCHable profile fields. Nil pointers mean
// "leave unchanged".
type ProfileUpdate struct {
	Sign       *zodiac.Sign
	BirthDate  *time.Time
	BirthTime  *string
	BirthPlace *string
}

// UpdateProfile applies a partial profile update and recomputes the derived
// signs when the birth date changes.
func (s *Service) UpdateProfile(ctx context.Context, user *models.User, upd ProfileUpdate) error {
	if upd.Sign != nil {
		user.Sign = *upd.Sign
	}
	if upd.BirthTime != nil {
		user.BirthTime = *upd.BirthTime
	}
	if upd.BirthPlace != nil {
		user.BirthPlace = *upd.BirthPlace
	}
	if upd.BirthDate != nil {
		user.BirthDate = upd.BirthDate
		user.DruidSign = zodiac.DruidSign(*upd.BirthDate)
		user.ChineseAnimal = zodiac.ChineseAnimal(*upd.BirthDate)
		if upd.Sign == nil {
			user.Sign = zodiac.SignForDate(*upd.BirthDate)
		}
	}
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// CompleteOnboarding stores the birth data collected by the onboarding flow
// and marks the user onboarded.
func (s *Service) CompleteOnboarding(ctx context.Context, user *models.User, upd ProfileUpdate) error {
	if err := s.UpdateProfile(ctx, user, upd); err != nil {
		return err
	}
	if user.OnboardingDone {
		return nil
	}
	user.OnboardingDone = true
	if err := s.db.WithContext(ctx).Model(user).
		Update("onboarding_done", true).Error; err != nil {
		return fmt.Errorf("failed to mark onboarding done: %w", err)
	}
	return nil
}
