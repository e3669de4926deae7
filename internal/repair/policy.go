// Package repair восстанавливает допустимую перестановку городов из
// вещественного вектора, который построил непрерывный метаэвристический
// оптимизатор.
//
// Обе политики являются чистыми функциями: они не хранят состояния между вызовами и
// могут вызываться параллельно. Случайность Unstable берётся только из
// переданного *rand.Rand, который не должен разделяться между горутинами.
package repair

import (
	"fmt"
	"math/rand"
	"strings"
)

// Политика восстановления перестановки
type Policy string

const (
	PolicyStable   Policy = "stable"
	PolicyUnstable Policy = "unstable"
)

// ParsePolicy разбирает имя политики без учёта регистра.
func ParsePolicy(s string) (Policy, error) {
	p := Policy(strings.ToLower(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

func (p Policy) Validate() error {
	switch p {
	case PolicyStable, PolicyUnstable:
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownPolicy, string(p))
	}
}

// CheckDomain проверяет конфигурацию до первого восстановления.
// Для stable достаточно корректных границ, unstable дополнительно
// требует совпадения размера домена с n.
func (p Policy) CheckDomain(n int, lower, upper []float64) error {
	switch p {
	case PolicyStable:
		return CheckBounds(n, lower, upper)
	case PolicyUnstable:
		return CheckDomain(n, lower, upper)
	default:
		return p.Validate()
	}
}

// Repair применяет политику к вектору v. rng нужен только для unstable.
func (p Policy) Repair(v, lower, upper []float64, rng *rand.Rand) ([]int, error) {
	switch p {
	case PolicyStable:
		return Stable(v, lower, upper)
	case PolicyUnstable:
		return Unstable(v, lower, upper, rng)
	default:
		return nil, p.Validate()
	}
}
