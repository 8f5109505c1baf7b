package components

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"court-booking/internal/domain/lottery"
	"court-booking/internal/domain/window"
	"court-booking/internal/pkg/clock"
	"court-booking/internal/pkg/config"
	"court-booking/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(cfg config.Config, clk clock.Clock) *window.Validator {
		return window.NewValidator(clk, cfg.Booking.RequestMinLeadDays, cfg.Booking.RequestMaxLeadDays)
	},
	func() lottery.WeightFunc {
		return lottery.InverseUsageWeight
	},
	NewRandFactory,
)

var usecaseModule = fx.Module("usecase/impl",
	fx.Provide(
		usecase.NewAuthUseCase,
		usecase.NewRequestUseCase,
		usecase.NewBookingUseCase,
		usecase.NewLotteryUseCase,
		usecase.NewCourtUseCase,
		usecase.NewUsageUseCase,
	),
)

// NewRandFactory seeds each lottery engine from the OS entropy source.
func NewRandFactory() usecase.RandFactory {
	return func() *rand.Rand {
		var buf [8]byte
		if _, err := cryptorand.Read(buf[:]); err != nil {
			panic("failed to read entropy for lottery seed: " + err.Error())
		}
		seed := int64(binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF)
		return rand.New(rand.NewSource(seed))
	}
}
