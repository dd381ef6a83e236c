package db

import "fmt"

const (
	CounterTotalFiles = "total_files"
	CounterUploads    = "uploads"
	CounterDownloads  = "downloads"
)

func (s *Store) seedCounters() error {
	for _, name := range []string{CounterTotalFiles, CounterUploads, CounterDownloads} {
		if _, err := s.db.Exec(`INSERT OR IGNORE INTO counters(name, value) VALUES (?, 0)`, name); err != nil {
			return fmt.Errorf("seed counter %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) IncrementCounter(name string, delta int64) error {
	_, err := s.db.Exec(`UPDATE counters SET value = value + ? WHERE name = ?`, delta, name)
	if err != nil {
		return fmt.Errorf("increment counter %s: %w", name, err)
	}
	return nil
}

func (s *Store) Counter(name string) (int64, error) {
	var v int64
	if err := s.db.QueryRow(`SELECT value FROM counters WHERE name = ?`, name).Scan(&v); err != nil {
		return 0, fmt.Errorf("read counter %s: %w", name, err)
	}
	return v, nil
}

// GetStats snapshots the aggregate counters. Uploads and downloads are
// lifetime totals and never decrease; total files tracks live records.
func (s *Store) GetStats() (Stats, error) {
	var st Stats
	var err error
	if st.TotalFiles, err = s.Counter(CounterTotalFiles); err != nil {
		return Stats{}, err
	}
	if st.Uploads, err = s.Counter(CounterUploads); err != nil {
		return Stats{}, err
	}
	if st.Downloads, err = s.Counter(CounterDownloads); err != nil {
		return Stats{}, err
	}
	if st.Users, err = s.CountUsers(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
