package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/freelancehub/session-gateway/internal/core/domain"
	"github.com/freelancehub/session-gateway/internal/core/ports"
	"github.com/freelancehub/session-gateway/internal/pkg/metrics"
)

// DefaultMaxInactivity is how long a session may go without interaction.
const DefaultMaxInactivity = 120 * time.Minute

var tracer = otel.Tracer("github.com/freelancehub/session-gateway/internal/core/service")

// ValidatorOptions configures a SessionValidator.
type ValidatorOptions struct {
	// CheckTokenValidity false makes every validation succeed immediately.
	CheckTokenValidity bool
	// MaxInactivity <= 0 disables the inactivity rule.
	MaxInactivity time.Duration
	Now           func() time.Time
}

func DefaultValidatorOptions() ValidatorOptions {
	return ValidatorOptions{
		CheckTokenValidity: true,
		MaxInactivity:      DefaultMaxInactivity,
		Now:                time.Now,
	}
}

// SessionValidator decides whether an authenticated session may still
// render protected content, and forces a logout when it may not.
type SessionValidator struct {
	session *Session
	opts    ValidatorOptions
	audit   ports.AuditSink
	log     zerolog.Logger
}

// NewSessionValidator returns a validator for session. audit may be nil.
func NewSessionValidator(session *Session, opts ValidatorOptions, audit ports.AuditSink, log zerolog.Logger) *SessionValidator {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionValidator{session: session, opts: opts, audit: audit, log: log}
}

// Validate runs the Validating step on mount. A Valid outcome refreshes
// the session's last activity.
func (v *SessionValidator) Validate(ctx context.Context) domain.SessionState {
	return v.run(ctx, true)
}

// Check re-evaluates a mounted session without counting as activity.
func (v *SessionValidator) Check(ctx context.Context) domain.SessionState {
	return v.run(ctx, false)
}

// Peek reports the state the session would validate to, without clearing
// credentials or refreshing activity.
func (v *SessionValidator) Peek(ctx context.Context) domain.SessionState {
	return evaluate(v.gather(ctx))
}

func (v *SessionValidator) run(ctx context.Context, refresh bool) domain.SessionState {
	ctx, span := tracer.Start(ctx, "session.validate",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.Bool("session.refresh", refresh)),
	)
	defer span.End()

	in := v.gather(ctx)
	state := evaluate(in)

	switch {
	case state.ClearsCredentials():
		v.invalidate(ctx, state)
	case state.Status == domain.StatusValid && refresh:
		if err := v.session.Activity.Touch(ctx); err != nil {
			v.log.Warn().Err(err).Msg("refresh activity on valid session")
		}
	}

	metrics.SessionValidationsTotal.WithLabelValues(state.Status.String(), string(state.Reason)).Inc()
	span.SetAttributes(
		attribute.String("session.status", state.Status.String()),
		attribute.String("session.reason", string(state.Reason)),
		attribute.String("token.kind", in.payload.Kind.String()),
	)
	return state
}

// validationInput is everything the transition from Validating depends on.
type validationInput struct {
	checkToken    bool
	token         string
	payload       domain.TokenPayload
	lastActivity  time.Time
	hasActivity   bool
	maxInactivity time.Duration
	now           time.Time
}

func (v *SessionValidator) gather(ctx context.Context) validationInput {
	in := validationInput{
		checkToken:    v.opts.CheckTokenValidity,
		maxInactivity: v.opts.MaxInactivity,
		now:           v.opts.Now(),
	}
	if !in.checkToken {
		return in
	}

	in.token, _ = v.session.Credentials.CurrentToken(ctx)
	if in.token == "" {
		return in
	}

	in.payload = DecodeToken(in.token)
	if in.payload.Kind == domain.TokenMalformed {
		v.log.Warn().Msg("token payload could not be decoded, skipping expiry check")
	}
	in.lastActivity, in.hasActivity = v.session.Activity.Last(ctx)
	return in
}

// evaluate is the transition out of Validating.
func evaluate(in validationInput) domain.SessionState {
	if !in.checkToken {
		return domain.Valid
	}
	if in.token == "" {
		return domain.Invalid(domain.ReasonNoToken)
	}
	if in.payload.ExpiredAt(in.now) {
		return domain.Invalid(domain.ReasonTokenExpired)
	}
	if in.hasActivity && in.maxInactivity > 0 && in.now.Sub(in.lastActivity) > in.maxInactivity {
		return domain.Invalid(domain.ReasonInactive)
	}
	return domain.Valid
}

func (v *SessionValidator) invalidate(ctx context.Context, state domain.SessionState) {
	role, _ := v.session.Credentials.CurrentRole(ctx)

	if err := v.session.Credentials.ClearAll(ctx); err != nil {
		v.log.Error().Err(err).Msg("clear credentials on invalid session")
	}
	if err := v.session.Activity.Forget(ctx); err != nil {
		v.log.Error().Err(err).Msg("forget activity on invalid session")
	}

	v.log.Info().Str("reason", string(state.Reason)).Str("role", string(role)).Msg("session invalidated")

	if v.audit != nil {
		v.audit.Publish(domain.SessionEvent{
			SessionID: v.session.ID,
			Kind:      domain.SessionInvalidated,
			Role:      role,
			Reason:    state.Reason,
			At:        v.opts.Now().UTC(),
		})
	}
}
