package cache

import (
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/travigo/signboard/pkg/fetcher"
)

// Tier is the severity class of a failed or degenerate fetch
type Tier int

const (
	TierNone Tier = iota
	TierShort
	TierMedium
	TierLong
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	default:
		return "unknown"
	}
}

// Directive is advisory: the caller decides whether to sleep for Wait
type Directive struct {
	Tier Tier
	Wait time.Duration
	Err  error
}

func (d Directive) Active() bool {
	return d.Tier != TierNone
}

var ErrEmptyResult = errors.New("fetch returned no entries")

// Classify maps a fetch error to the tier of backoff it warrants
func Classify(err error) Tier {
	if err == nil {
		return TierNone
	}

	var remoteError *fetcher.RemoteError
	var transportError *fetcher.TransportError
	var malformedError *fetcher.MalformedResponseError

	switch {
	case errors.Is(err, ErrEmptyResult):
		return TierShort
	case errors.As(err, &remoteError):
		return TierShort
	case errors.As(err, &transportError):
		return TierMedium
	case errors.As(err, &malformedError):
		return TierLong
	default:
		return TierMedium
	}
}

const (
	DefaultShortBackoff  = 30 * time.Second
	DefaultMediumBackoff = 5 * time.Minute
	DefaultLongBackoff   = 15 * time.Minute

	escalationCeiling = 4
)

// BackoffPolicy hands out the wait for each tier. Constant by default; with
// Escalate set, repeated failures of one tier double the wait up to four times the base.
type BackoffPolicy struct {
	Short    time.Duration
	Medium   time.Duration
	Long     time.Duration
	Escalate bool

	policies map[Tier]backoff.BackOff
}

func DefaultBackoffPolicy() *BackoffPolicy {
	return &BackoffPolicy{
		Short:  DefaultShortBackoff,
		Medium: DefaultMediumBackoff,
		Long:   DefaultLongBackoff,
	}
}

func (p *BackoffPolicy) base(tier Tier) time.Duration {
	switch tier {
	case TierShort:
		return p.Short
	case TierMedium:
		return p.Medium
	case TierLong:
		return p.Long
	default:
		return 0
	}
}

func (p *BackoffPolicy) policy(tier Tier) backoff.BackOff {
	if p.policies == nil {
		p.policies = map[Tier]backoff.BackOff{}
	}

	if existing, ok := p.policies[tier]; ok {
		return existing
	}

	base := p.base(tier)
	var created backoff.BackOff

	if p.Escalate {
		exponential := backoff.NewExponentialBackOff()
		exponential.InitialInterval = base
		exponential.RandomizationFactor = 0
		exponential.Multiplier = 2
		exponential.MaxInterval = base * escalationCeiling
		exponential.MaxElapsedTime = 0
		exponential.Reset()

		created = exponential
	} else {
		created = backoff.NewConstantBackOff(base)
	}

	p.policies[tier] = created
	return created
}

// Next returns the wait for another failure of the given tier
func (p *BackoffPolicy) Next(tier Tier) time.Duration {
	if tier == TierNone {
		return 0
	}

	wait := p.policy(tier).NextBackOff()
	if wait == backoff.Stop {
		return p.base(tier) * escalationCeiling
	}

	return wait
}

// Reset forgets any escalation, called after a successful fetch
func (p *BackoffPolicy) Reset() {
	for _, policy := range p.policies {
		policy.Reset()
	}
}
