// Package countdown 提供优惠页面的装饰性倒计时
package countdown

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultStart 默认起始值 12:34:56
	DefaultStart = 12*time.Hour + 34*time.Minute + 56*time.Second

	// DefaultInterval 默认滴答间隔
	DefaultInterval = time.Second
)

// Remaining 倒计时剩余时间
type Remaining struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// String 格式化为 HH:MM:SS
func (r Remaining) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
}

// Countdown 每个间隔减少一秒，到零后回到起始值
// 与价格、购物车和订单状态无关
type Countdown struct {
	start     time.Duration   // 起始值
	remaining int64           // 剩余秒数
	interval  time.Duration   // 滴答间隔
	onTick    func(Remaining) // 滴答回调
	closeChan chan struct{}   // 关闭信号
	closeOnce sync.Once       // 确保只关闭一次
	startOnce sync.Once       // 确保只启动一次
	wg        sync.WaitGroup  // 等待组
	tickCount uint64          // 滴答次数
	wrapCount uint64          // 回绕次数
}

// Config 倒计时配置
type Config struct {
	// 起始值，按秒截断，默认 12:34:56
	Start time.Duration

	// 滴答间隔，默认一秒
	Interval time.Duration

	// 滴答回调函数
	OnTick func(Remaining)
}

// New 创建一个新的倒计时，不会自动启动
func New(config *Config) *Countdown {
	if config == nil {
		config = &Config{}
	}

	start := config.Start.Truncate(time.Second)
	if start <= 0 {
		start = DefaultStart
	}

	interval := config.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Countdown{
		start:     start,
		remaining: int64(start / time.Second),
		interval:  interval,
		onTick:    config.OnTick,
		closeChan: make(chan struct{}),
	}
}

// Start 启动滴答协程，重复调用无效
func (c *Countdown) Start() {
	c.startOnce.Do(func() {
		c.wg.Add(1)
		go c.loop()
	})
}

// loop 滴答循环
func (c *Countdown) loop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r := c.Tick()
			if c.onTick != nil {
				c.onTick(r)
			}
		case <-c.closeChan:
			return
		}
	}
}

// Tick 减少一秒，已经为零时回到起始值
func (c *Countdown) Tick() Remaining {
	for {
		cur := atomic.LoadInt64(&c.remaining)
		next := cur - 1
		wrapped := cur <= 0
		if wrapped {
			next = int64(c.start / time.Second)
		}
		if atomic.CompareAndSwapInt64(&c.remaining, cur, next) {
			atomic.AddUint64(&c.tickCount, 1)
			if wrapped {
				atomic.AddUint64(&c.wrapCount, 1)
			}
			return split(next)
		}
	}
}

// Remaining 返回剩余时间
func (c *Countdown) Remaining() Remaining {
	return split(atomic.LoadInt64(&c.remaining))
}

// Reset 回到起始值
func (c *Countdown) Reset() {
	atomic.StoreInt64(&c.remaining, int64(c.start/time.Second))
}

// Close 停止滴答协程，可重复调用
func (c *Countdown) Close() {
	c.closeOnce.Do(func() {
		close(c.closeChan)
	})
	c.wg.Wait()
}

// GetStats 获取倒计时的统计信息
func (c *Countdown) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"tick_count": atomic.LoadUint64(&c.tickCount),
		"wrap_count": atomic.LoadUint64(&c.wrapCount),
		"remaining":  c.Remaining().String(),
		"start":      split(int64(c.start / time.Second)).String(),
		"interval":   c.interval.String(),
	}
}

func split(secs int64) Remaining {
	return Remaining{
		Hours:   int(secs / 3600),
		Minutes: int(secs % 3600 / 60),
		Seconds: int(secs % 60),
	}
}
