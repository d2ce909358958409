package data

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Memory is an in-process store for running without a database.
type Memory struct {
	mu     sync.Mutex
	nextID uint
	days   map[Key]map[string]LocationInformation
}

func NewMemory() *Memory {
	return &Memory{
		days: make(map[Key]map[string]LocationInformation),
	}
}

func (m *Memory) Range(_ context.Context, key Key, start, end string) ([]LocationInformation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var infos []LocationInformation
	for date, info := range m.days[key] {
		if date >= start && date <= end {
			infos = append(infos, info)
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].InformationDate < infos[j].InformationDate
	})
	return infos, nil
}

func (m *Memory) Insert(_ context.Context, infos []LocationInformation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for _, info := range infos {
		key := info.Key()
		if m.days[key] == nil {
			m.days[key] = make(map[string]LocationInformation)
		}
		if _, ok := m.days[key][info.InformationDate]; ok {
			continue
		}
		m.nextID++
		info.ID = m.nextID
		info.CreatedAt, info.UpdatedAt = now, now
		m.days[key][info.InformationDate] = info
	}
	return nil
}
