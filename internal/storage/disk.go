package storage

import "os"

// DiskUsageBytes returns the total on-disk size of the cache database at
// dbPath, including the WAL sidecar files SQLite keeps next to it. Missing
// paths contribute 0.
func DiskUsageBytes(dbPath string) (int64, error) {
	if dbPath == "" {
		return 0, nil
	}
	var total int64
	for _, p := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}
