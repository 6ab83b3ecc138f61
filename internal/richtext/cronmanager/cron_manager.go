// Пакет для запуска фоновых задач сервиса по расписанию cron.
//
// Основные возможности:
//   - Реестр задач по имени с расписанием в формате cron.
//   - Пропуск запуска, если предыдущий запуск задачи еще выполняется.
//   - Журналирование длительности и ошибок каждого запуска через slog.
//   - Отмена контекста выполняющихся задач при остановке.
package cronmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobFunc - тело задачи. Контекст отменяется при остановке менеджера.
type JobFunc func(ctx context.Context) error

type Job struct {
	Func     JobFunc
	Schedule string
}

type JobRegistry map[string]Job

type CronManager struct {
	dispatcher *cron.Cron
	registry   JobRegistry

	mu      sync.Mutex
	entries map[string]cron.EntryID

	ctx    context.Context
	cancel context.CancelFunc
}

// slogAdapter пишет сообщения диспетчера cron в slog.
type slogAdapter struct{}

func (slogAdapter) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append(keysAndValues, "err", err)...)
}

func NewCronManager(registry JobRegistry) *CronManager {
	ctx, cancel := context.WithCancel(context.Background())
	logger := slogAdapter{}
	return &CronManager{
		dispatcher: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		registry: registry,
		entries:  make(map[string]cron.EntryID),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// LoadJobs заново ставит в расписание все задачи реестра.
// Задачи с некорректным расписанием пропускаются, ошибки по ним объединяются в результат.
func (cm *CronManager) LoadJobs() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for name, id := range cm.entries {
		cm.dispatcher.Remove(id)
		delete(cm.entries, name)
	}

	var errs []error
	for _, name := range slices.Sorted(maps.Keys(cm.registry)) {
		job := cm.registry[name]
		id, err := cm.dispatcher.AddFunc(job.Schedule, cm.wrap(name, job.Func))
		if err != nil {
			slog.Error("Schedule job", "name", name, "schedule", job.Schedule, "err", err)
			errs = append(errs, fmt.Errorf("job %s: %w", name, err))
			continue
		}
		cm.entries[name] = id
	}
	return errors.Join(errs...)
}

func (cm *CronManager) wrap(name string, fn JobFunc) func() {
	return func() {
		if cm.ctx.Err() != nil {
			return
		}
		start := time.Now()
		slog.Info("Job started", "name", name)
		if err := fn(cm.ctx); err != nil {
			slog.Error("Job failed", "name", name, "duration", time.Since(start), "err", err)
			return
		}
		slog.Info("Job finished", "name", name, "duration", time.Since(start))
	}
}

// Run выполняет задачу реестра вне расписания в текущей горутине.
func (cm *CronManager) Run(name string) error {
	job, ok := cm.registry[name]
	if !ok {
		return fmt.Errorf("unknown job %s", name)
	}
	return job.Func(cm.ctx)
}

// Jobs возвращает имена задач в расписании по алфавиту.
func (cm *CronManager) Jobs() []string {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return slices.Sorted(maps.Keys(cm.entries))
}

// Next возвращает время следующего запуска задачи.
func (cm *CronManager) Next(name string) (time.Time, bool) {
	cm.mu.Lock()
	id, ok := cm.entries[name]
	cm.mu.Unlock()
	if !ok {
		return time.Time{}, false
	}
	return cm.dispatcher.Entry(id).Next, true
}

func (cm *CronManager) RemoveJob(name string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if id, ok := cm.entries[name]; ok {
		cm.dispatcher.Remove(id)
		delete(cm.entries, name)
	}
}

func (cm *CronManager) Start() {
	cm.dispatcher.Start()
}

// Stop отменяет контекст задач и ждет завершения выполняющихся запусков.
func (cm *CronManager) Stop() {
	cm.cancel()
	<-cm.dispatcher.Stop().Done()
}
