package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errUnavailable = errors.New("redis unavailable")

// fakeClock 可手动推进的时钟
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time           { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(cfg Config) (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	cb := NewCircuitBreaker("item-cache", cfg)
	cb.now = clock.now
	return cb, clock
}

func fail() error    { return errUnavailable }
func succeed() error { return nil }

// TestDefaults 零值配置使用默认值
func TestDefaults(t *testing.T) {
	cb := NewCircuitBreaker("test", Config{})
	if cb.cfg.MaxFailures != 5 || cb.cfg.OpenTimeout != 30*time.Second || cb.cfg.HalfOpenRequests != 1 {
		t.Errorf("默认配置错误: %+v", cb.cfg)
	}
	if cb.State() != StateClosed {
		t.Errorf("初始状态应为CLOSED，实际%s", cb.State())
	}
}

// TestOpenAfterConsecutiveFailures 连续失败达到阈值后熔断
func TestOpenAfterConsecutiveFailures(t *testing.T) {
	cb, _ := newTestBreaker(Config{MaxFailures: 3, OpenTimeout: time.Minute})

	for i := 0; i < 2; i++ {
		if err := cb.Execute(fail); !errors.Is(err, errUnavailable) {
			t.Fatalf("应返回原始错误，实际%v", err)
		}
	}
	// 中间一次成功清零计数
	_ = cb.Execute(succeed)
	_ = cb.Execute(fail)
	_ = cb.Execute(fail)
	if cb.State() != StateClosed {
		t.Fatalf("失败不连续时不应熔断，实际%s", cb.State())
	}

	_ = cb.Execute(fail)
	if cb.State() != StateOpen {
		t.Fatalf("期望OPEN，实际%s", cb.State())
	}

	called := false
	err := cb.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("熔断中应返回ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断中不应执行请求")
	}
}

// TestHalfOpen 超时后放行探测请求
func TestHalfOpen(t *testing.T) {
	tests := []struct {
		name  string
		probe func() error
		want  State
	}{
		{"探测成功恢复", succeed, StateClosed},
		{"探测失败重新熔断", fail, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, clock := newTestBreaker(Config{MaxFailures: 1, OpenTimeout: time.Minute})
			_ = cb.Execute(fail)

			clock.advance(59 * time.Second)
			if cb.State() != StateOpen {
				t.Fatalf("未到超时应保持OPEN，实际%s", cb.State())
			}

			clock.advance(time.Second)
			if cb.State() != StateHalfOpen {
				t.Fatalf("期望HALF_OPEN，实际%s", cb.State())
			}

			_ = cb.Execute(tt.probe)
			if cb.State() != tt.want {
				t.Errorf("期望%s，实际%s", tt.want, cb.State())
			}
		})
	}
}

// TestHalfOpenLimitsProbes 半开状态只放行HalfOpenRequests个请求
func TestHalfOpenLimitsProbes(t *testing.T) {
	cb, clock := newTestBreaker(Config{MaxFailures: 1, OpenTimeout: time.Second, HalfOpenRequests: 1})
	_ = cb.Execute(fail)
	clock.advance(time.Second)

	err := cb.Execute(func() error {
		// 探测进行中，第二个请求被拒绝
		if err := cb.Execute(succeed); !errors.Is(err, ErrOpenState) {
			t.Errorf("探测名额已满应返回ErrOpenState，实际%v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("探测请求应被放行: %v", err)
	}
	if cb.State() != StateClosed {
		t.Errorf("期望CLOSED，实际%s", cb.State())
	}
}

// TestStateChangeCallback 状态变化通知
func TestStateChangeCallback(t *testing.T) {
	cb, clock := newTestBreaker(Config{MaxFailures: 1, OpenTimeout: time.Second})

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, name+":"+from.String()+"->"+to.String())
	})

	_ = cb.Execute(fail)
	clock.advance(time.Second)
	_ = cb.Execute(succeed)

	want := []string{
		"item-cache:CLOSED->OPEN",
		"item-cache:OPEN->HALF_OPEN",
		"item-cache:HALF_OPEN->CLOSED",
	}
	if len(transitions) != len(want) {
		t.Fatalf("状态变化次数错误: expected=%v, got=%v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("第%d次状态变化: expected=%s, got=%s", i, want[i], transitions[i])
		}
	}
}

func TestStateString(t *testing.T) {
	if State(9).String() != "UNKNOWN" {
		t.Error("未知状态应输出UNKNOWN")
	}
}
