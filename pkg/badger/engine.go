package badger

import (
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog/log"
)

// DefaultGCInterval 默认GC间隔
const DefaultGCInterval = time.Minute * 5

// closeTimeout 关闭时等待GC协程退出的时间
var closeTimeout = time.Second * 5

// ErrCloseTimeout 关闭超时
var ErrCloseTimeout = errors.New("badger engine close timeout")

// Engine badger引擎
type Engine struct {
	db *badger.DB // badgerDB

	gcInterval   time.Duration      // GC间隔时间
	gcUpdateChan chan time.Duration // GC更新间隔时间信号

	done      chan struct{} // 退出信号
	gcStopped chan struct{} // GC协程退出信号
	closeOnce sync.Once
	err       error // 关闭错误
}

// New 创建一个badger引擎
func New(opt badger.Options) (*Engine, error) {
	return open(opt)
}

// Default 创建一个默认的badger引擎
func Default(addr string) (*Engine, error) {
	return open(badger.DefaultOptions(addr).WithLogger(nil))
}

// InMemory 创建一个纯内存的badger引擎, 关闭后数据丢失
func InMemory() (*Engine, error) {
	return open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
}

// open 创建一个badger引擎
func open(opt badger.Options) (*Engine, error) {
	db, err := badger.Open(opt)
	if err != nil {
		return nil, err
	}
	be := &Engine{
		db: db,

		gcInterval:   DefaultGCInterval,
		gcUpdateChan: make(chan time.Duration),

		done:      make(chan struct{}),
		gcStopped: make(chan struct{}),
	}
	go be.listenerGC(time.NewTicker(be.gcInterval))
	return be, nil
}

// listenerGC 监听GC信号, 收到退出信号后返回
func (e *Engine) listenerGC(ticker *time.Ticker) {
	defer close(e.gcStopped)
	defer func() { ticker.Stop() }()

	for {
		select {
		case <-ticker.C:
			if err := e.db.RunValueLogGC(0.5); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Debug().Err(err).Msg("value log gc skipped")
			}
		case interval := <-e.gcUpdateChan:
			e.gcInterval = interval
			ticker.Stop()
			ticker = time.NewTicker(interval)
		case <-e.done:
			return
		}
	}
}

// SetGCInterval 设置GC间隔, 非正数忽略
func (e *Engine) SetGCInterval(interval time.Duration) {
	if 0 >= interval {
		return
	}
	select {
	case e.gcUpdateChan <- interval:
	case <-e.done:
	}
}

// Close 关闭badger引擎, 重复调用返回第一次的结果
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)
		select {
		case <-e.gcStopped:
			e.err = e.db.Close()
		case <-time.After(closeTimeout):
			log.Warn().Dur("timeout", closeTimeout).Msg("value log gc still running, closing db anyway")
			e.err = errors.Join(ErrCloseTimeout, e.db.Close())
		}
	})
	return e.err
}
