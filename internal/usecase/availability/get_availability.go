package availability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/logger"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var tracer = otel.Tracer("github.com/BruksfildServices01/barbershop-booking/internal/usecase/availability")

// BarberLookup confirms a barber exists and takes bookings.
type BarberLookup interface {
	GetBarber(ctx context.Context, barberID uint) (*models.User, error)
}

type Input struct {
	BarberID uint
	// Date is midnight of the requested day in the shop time zone; zero
	// when the caller has not picked one.
	Date     time.Time
	Selected string
}

type GetAvailability struct {
	store   domain.Store
	barbers BarberLookup
	policy  domain.FailurePolicy
	metrics *metrics.BookingMetrics
}

func NewGetAvailability(
	store domain.Store,
	barbers BarberLookup,
	policy domain.FailurePolicy,
	m *metrics.BookingMetrics,
) *GetAvailability {
	return &GetAvailability{
		store:   store,
		barbers: barbers,
		policy:  policy,
		metrics: m,
	}
}

func (uc *GetAvailability) Execute(ctx context.Context, in Input) (domain.Result, error) {
	if in.BarberID == 0 || in.Date.IsZero() {
		return domain.Resolve(domain.Input{BarberID: in.BarberID, Date: in.Date, Selected: in.Selected}), nil
	}

	if _, err := uc.barbers.GetBarber(ctx, in.BarberID); err != nil {
		return domain.Result{}, err
	}

	ctx, span := tracer.Start(ctx, "availability.resolve")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("barber.id", int64(in.BarberID)),
		attribute.String("date", in.Date.Format(domain.DateLayout)),
	)

	started := time.Now()
	rin := uc.load(ctx, in)
	rin.Selected = in.Selected
	rin.Policy = uc.policy

	res := domain.Resolve(rin)

	uc.metrics.ObserveResolution(string(res.State), time.Since(started).Seconds())
	if res.Invalidated != nil {
		uc.metrics.ObserveInvalidation(string(res.Invalidated.Reason))
	}
	span.SetAttributes(attribute.String("availability.state", string(res.State)))

	return res, nil
}

// load fetches the three sources concurrently. Each read keeps its own error
// in its Source, so one failure never cancels or hides the others.
func (uc *GetAvailability) load(ctx context.Context, in Input) domain.Input {
	date := in.Date.Format(domain.DateLayout)
	out := domain.Input{BarberID: in.BarberID, Date: in.Date}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ctx, span := tracer.Start(gctx, "availability.weekly")
		defer span.End()
		row, err := uc.store.GetWeeklyAvailability(ctx, in.BarberID, in.Date.Weekday())
		out.Weekly = domain.WeeklySource(row, err)
		return nil
	})

	g.Go(func() error {
		ctx, span := tracer.Start(gctx, "availability.bookings")
		defer span.End()
		rows, err := uc.store.ListActiveBookings(ctx, in.BarberID, date)
		out.Bookings = domain.BookingsSource(rows, err)
		return nil
	})

	g.Go(func() error {
		ctx, span := tracer.Start(gctx, "availability.blocked_times")
		defer span.End()
		rows, err := uc.store.ListBlockedTimes(ctx, in.BarberID)
		out.Blocks = domain.BlocksSource(rows, err)
		return nil
	})

	_ = g.Wait()

	uc.report(ctx, in, "weekly_availability", out.Weekly.Err)
	uc.report(ctx, in, "bookings", out.Bookings.Err)
	uc.report(ctx, in, "blocked_times", out.Blocks.Err)

	return out
}

func (uc *GetAvailability) report(ctx context.Context, in Input, source string, err error) {
	if err == nil {
		return
	}
	uc.metrics.ObserveSourceFailure(source)
	logger.FromContext(ctx).Warn().
		Err(err).
		Str("source", source).
		Uint("barber_id", in.BarberID).
		Str("date", in.Date.Format(domain.DateLayout)).
		Str("policy", string(uc.policy)).
		Msg("availability source read failed")
}
