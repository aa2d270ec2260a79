package subscription

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// TestMain 테스트 종료 시 고루틴 누수 여부를 검사합니다.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSweeperService(t *testing.T) {
	t.Run("성공: 서비스 시작 후 종료 신호에 정상 종료된다", func(t *testing.T) {
		service := NewSweeperService(NewCache(nil))

		ctx, cancel := context.WithCancel(context.Background())
		var wg sync.WaitGroup
		wg.Add(1)

		require.NoError(t, service.Start(ctx, &wg))

		cancel()

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("서비스가 제한 시간 내에 종료되지 않았습니다")
		}
	})

	t.Run("성공: 중복 시작 호출은 무시된다", func(t *testing.T) {
		service := NewSweeperService(NewCache(nil))

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var wg sync.WaitGroup
		wg.Add(2)

		require.NoError(t, service.Start(ctx, &wg))
		require.NoError(t, service.Start(ctx, &wg))

		service.Stop()
	})

	t.Run("성공: sweep 실행 시 만료 레코드가 제거된다", func(t *testing.T) {
		clock := newFakeClock()
		cache := NewCache(clock.Now)
		cache.Set("oud@example.nl", &Record{Email: "oud@example.nl", CreatedAt: clock.Now()})
		clock.Advance(25 * time.Hour)

		service := NewSweeperService(cache)
		service.sweep()

		assert.Equal(t, 0, cache.Len())
	})

	t.Run("실패: 캐시 없이 생성하면 패닉이 발생한다", func(t *testing.T) {
		assert.Panics(t, func() {
			NewSweeperService(nil)
		})
	})
}
