package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/salamene/horoscope-backend/internal/app/api/server"
	"github.com/salamene/horoscope-backend/internal/app/service/account"
	"github.com/salamene/horoscope-backend/internal/app/service/analytics"
	"github.com/salamene/horoscope-backend/internal/app/service/compatibility"
	"github.com/salamene/horoscope-backend/internal/app/service/horoscope"
	"github.com/salamene/horoscope-backend/internal/app/service/payment"
	"github.com/salamene/horoscope-backend/internal/platform/appleiap"
	"github.com/salamene/horoscope-backend/internal/platform/db"
	"github.com/salamene/horoscope-backend/internal/platform/geoip"
	"github.com/salamene/horoscope-backend/pkg/config"
	"github.com/salamene/horoscope-backend/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	geoip.Module,
	appleiap.Module,
	server.Module,
	account.Module,
	horoscope.Module,
	compatibility.Module,
	payment.Module,
	analytics.Module,
)
