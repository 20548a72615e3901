// Package workerpool provides a fixed set of worker goroutines that execute batches of tasks.
//
// A Pool is an explicit scheduler handle: create it at program start, pass it to whatever needs
// parallelism, and Close it at program end.
package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/usnistgov/parhist/core/logging"
	"go.uber.org/zap"
)

var logger = logging.New("workerpool")

// ErrClosed indicates the pool has been closed.
var ErrClosed = errors.New("worker pool is closed")

// Pool is a fixed set of worker goroutines.
type Pool struct {
	workers []*worker
	queue   chan job
	running sync.WaitGroup

	closeMutex sync.RWMutex
	closed     bool
}

// New creates and starts a Pool.
func New(cfg Config) (p *Pool, e error) {
	lcores := cfg.applyDefaults()
	if e := cfg.validate(); e != nil {
		return nil, e
	}

	p = &Pool{
		workers: make([]*worker, cfg.NWorkers),
		queue:   make(chan job, cfg.QueueCapacity),
	}
	for i := range p.workers {
		w := &worker{id: i, lcore: -1}
		if cfg.PinCores && len(lcores) > 0 {
			w.lcore = lcores[i%len(lcores)]
		}
		p.workers[i] = w
	}

	p.running.Add(len(p.workers))
	for _, w := range p.workers {
		go w.run(p.queue, &p.running)
	}

	logger.Info("worker pool started",
		zap.Int("nWorkers", len(p.workers)),
		zap.Int("queueCapacity", cfg.QueueCapacity),
		zap.Bool("pinCores", cfg.PinCores),
		zap.Ints("lcores", lcores),
	)
	return p, nil
}

// NWorkers returns the number of workers.
func (p *Pool) NWorkers() int {
	return len(p.workers)
}

// Workers returns information about each worker.
func (p *Pool) Workers() (list []WorkerInfo) {
	for _, w := range p.workers {
		list = append(list, w.info())
	}
	return list
}

// Do executes fn for every task index in [0, nTasks) and waits until all tasks complete.
// fn receives the index of the executing worker in [0, NWorkers()) and the task index.
//
// A worker executes one task at a time, so per-worker state indexed by the worker argument is
// exclusively owned by the running task. Tasks must not call Do on the same pool.
//
// If any task panics, the panic is recovered on the worker, and Do panics with the value
// recovered from the lowest task index after all tasks have completed.
func (p *Pool) Do(nTasks int, fn func(worker, task int)) error {
	p.closeMutex.RLock()
	if p.closed {
		p.closeMutex.RUnlock()
		return ErrClosed
	}
	if nTasks <= 0 {
		p.closeMutex.RUnlock()
		return nil
	}

	b := &batch{}
	b.wg.Add(nTasks)
	for i := 0; i < nTasks; i++ {
		p.queue <- job{fn: fn, task: i, b: b}
	}
	p.closeMutex.RUnlock()

	b.wg.Wait()
	if b.panicked {
		panic(b.panicValue)
	}
	return nil
}

// LoadStats returns per-worker load counters.
// This must not be invoked concurrently with Do.
func (p *Pool) LoadStats() (list []LoadStat) {
	for _, w := range p.workers {
		list = append(list, w.stat)
	}
	return list
}

// Close stops all workers.
// Pending tasks are completed first.
// It is safe to call Close more than once.
func (p *Pool) Close() error {
	p.closeMutex.Lock()
	if p.closed {
		p.closeMutex.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.closeMutex.Unlock()

	p.running.Wait()
	logger.Info("worker pool stopped", zap.Int("nWorkers", len(p.workers)))
	return nil
}

type job struct {
	fn   func(worker, task int)
	task int
	b    *batch
}

type batch struct {
	wg         sync.WaitGroup
	mutex      sync.Mutex
	panicked   bool
	panicTask  int
	panicValue any
}

func (b *batch) recordPanic(task int, value any) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	if !b.panicked || task < b.panicTask {
		b.panicked, b.panicTask, b.panicValue = true, task, value
	}
}

// WorkerInfo describes a worker.
type WorkerInfo struct {
	ID int `json:"id"`
	// LCore is the CPU core the worker is pinned to, or -1 if unpinned.
	LCore int `json:"lcore"`
}

func (wi WorkerInfo) String() string {
	if wi.LCore < 0 {
		return fmt.Sprintf("worker%d", wi.ID)
	}
	return fmt.Sprintf("worker%d@lcore%d", wi.ID, wi.LCore)
}

type worker struct {
	id    int
	lcore int
	stat  LoadStat
}

func (w *worker) info() WorkerInfo {
	return WorkerInfo{ID: w.id, LCore: w.lcore}
}

func (w *worker) run(queue <-chan job, running *sync.WaitGroup) {
	defer running.Done()
	if w.lcore >= 0 {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if e := pinThread(w.lcore); e != nil {
			logger.Warn("cannot pin worker", zap.Stringer("worker", w.info()), zap.Error(e))
		}
	}

	for j := range queue {
		w.exec(j)
	}
}

func (w *worker) exec(j job) {
	defer j.b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			j.b.recordPanic(j.task, r)
		}
	}()
	w.stat.Tasks++
	j.fn(w.id, j.task)
}
