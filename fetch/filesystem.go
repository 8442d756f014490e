package fetch

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// FileCache caches downloads in a single JSON file on disk. It is meant for
// command line use, where a process fetches a bundle, exits, and runs again
// soon after.
type FileCache struct {
	Path    string
	Records map[string]fileCacheRecord

	mutex sync.Mutex
}

type fileCacheRecord struct {
	Body        string `json:"body"`
	RetrievedAt string `json:"retrieved_at"`
}

func NewFileCache(path string) (*FileCache, error) {
	fc := &FileCache{
		Path:    path,
		Records: map[string]fileCacheRecord{},
	}

	err := fc.load()
	if err != nil {
		return nil, err
	}

	return fc, nil
}

func (f *FileCache) Get(
	ctx context.Context,
	url string,
	headers map[string]string,
	options GetOptions,
) ([]byte, error) {

	f.mutex.Lock()
	defer f.mutex.Unlock()

	if options.Cache {
		if record, found := f.Records[url]; found {
			retrievedAt, err := time.Parse(time.RFC3339, record.RetrievedAt)
			if err != nil {
				return nil, fmt.Errorf("reading cache record: %w", err)
			}
			if retrievedAt.Add(options.CacheTTL).After(time.Now()) {
				body, err := base64.StdEncoding.DecodeString(record.Body)
				if err != nil {
					return nil, fmt.Errorf("decoding cache record: %w", err)
				}
				return body, nil
			}
		}
	}

	body, err := HTTPGet(ctx, url, headers, options)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}

	if options.Cache {
		f.Records[url] = fileCacheRecord{
			Body:        base64.StdEncoding.EncodeToString(body),
			RetrievedAt: time.Now().UTC().Format(time.RFC3339),
		}
		err = f.save()
		if err != nil {
			return nil, fmt.Errorf("saving cache: %w", err)
		}
	}

	return body, nil
}

func (f *FileCache) load() error {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	_, err := os.Stat(f.Path)
	if os.IsNotExist(err) {
		return nil
	}

	buf, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("reading cache: %w", err)
	}

	err = json.Unmarshal(buf, &f.Records)
	if err != nil {
		return fmt.Errorf("unmarshalling cache: %w", err)
	}

	return nil
}

func (f *FileCache) save() error {
	buf, err := json.Marshal(f.Records)
	if err != nil {
		return fmt.Errorf("marshalling cache: %w", err)
	}

	err = os.WriteFile(f.Path, buf, 0644)
	if err != nil {
		return fmt.Errorf("writing cache: %w", err)
	}

	return nil
}
