package subscription

import (
	"sync"
	"time"
)

// maxRecordAge 멱등성 레코드가 스윕 대상이 되기까지의 보존 시간입니다.
// 이 시간이 지난 레코드는 다음 스윕 주기에 제거되어 재구독이 가능해집니다.
const maxRecordAge = 24 * time.Hour

// Record 이메일 1건의 구독 처리 결과를 담는 멱등성 레코드입니다.
//
// 프로세스 메모리에만 존재하며 재시작 시 소멸됩니다. 중복 구독 방지는
// 단일 프로세스 수명 내에서만 보장되는 Best-Effort 동작입니다.
type Record struct {
	Email        string
	DiscountCode string
	CreatedAt    time.Time // 레코드 생성 시각 (스윕 기준)
	ExpiresAt    time.Time // 할인 코드 만료 시각 (생성 + 30일)
}

// Cache 이메일을 키로 하는 인메모리 멱등성 캐시입니다.
//
// 시계를 주입받아 테스트에서 시간을 결정적으로 제어할 수 있습니다.
// 맵 접근 자체는 뮤텍스로 보호되지만, 호출자의 조회-후-저장(check-then-set)
// 시퀀스는 원자적이지 않습니다. 같은 이메일의 동시 최초 구독 요청이 모두
// '레코드 없음' 판정을 통과할 수 있으며, 그 결과는 중복 원격 가입 1건일 뿐
// 데이터 손상이 아니므로 의도적으로 잠금 범위를 넓히지 않았습니다.
type Cache struct {
	mu      sync.Mutex
	records map[string]*Record

	now func() time.Time
}

// NewCache Cache 인스턴스를 생성합니다. now가 nil이면 시스템 시계를 사용합니다.
func NewCache(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}

	return &Cache{
		records: make(map[string]*Record),
		now:     now,
	}
}

// Get 이메일에 해당하는 레코드를 조회합니다.
func (c *Cache) Get(email string) (*Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.records[email]
	return record, ok
}

// Set 이메일에 레코드를 저장합니다. 기존 레코드가 있으면 덮어씁니다.
func (c *Cache) Set(email string, record *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[email] = record
}

// Delete 이메일의 레코드를 제거합니다.
// 구독 처리 중 치명적 오류가 발생한 이메일의 재시도를 허용하기 위해 사용됩니다.
func (c *Cache) Delete(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.records, email)
}

// Sweep 보존 시간(24시간)이 지난 레코드를 일괄 제거하고 제거된 개수를 반환합니다.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for email, record := range c.records {
		if now.Sub(record.CreatedAt) > maxRecordAge {
			delete(c.records, email)
			removed++
		}
	}

	return removed
}

// Len 현재 보관 중인 레코드 수를 반환합니다.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.records)
}
