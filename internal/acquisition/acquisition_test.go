package acquisition

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salarydash/internal/config"
	"salarydash/internal/errors"
)

// stubFetcher records invocations and either writes content or fails.
type stubFetcher struct {
	content string
	err     error
	calls   int
}

func (f *stubFetcher) Fetch(_ context.Context, dest string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(dest, []byte(f.content), 0644)
}

func TestObtainRawFile_CacheHitSkipsFetch(t *testing.T) {
	dir := t.TempDir()
	cached := filepath.Join(dir, "survey_results.csv")
	require.NoError(t, os.WriteFile(cached, []byte("Timestamp\n"), 0644))

	fetcher := &stubFetcher{content: "should not be used"}
	svc := NewService(fetcher, nil)

	path, err := svc.ObtainRawFile(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, cached, path)
	assert.Zero(t, fetcher.calls, "cache hit must not touch the network")
}

func TestObtainRawFile_CacheHitIsLexicallyFirst(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_export.csv"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_export.csv"), []byte("a"), 0644))

	svc := NewService(&stubFetcher{}, nil)
	path, err := svc.ObtainRawFile(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a_export.csv"), path)
}

func TestObtainRawFile_RemoteFetchCaches(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache") // does not exist yet
	fetcher := &stubFetcher{content: "Timestamp,salary\n"}
	svc := NewService(fetcher, nil)

	path, err := svc.ObtainRawFile(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, CacheFileName), path)
	assert.Equal(t, 1, fetcher.calls)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Timestamp,salary\n", string(content))

	// Second call hits the cache.
	path2, err := svc.ObtainRawFile(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, path, path2)
	assert.Equal(t, 1, fetcher.calls)
}

func TestObtainRawFile_FetchFailureIsDataUnavailable(t *testing.T) {
	dir := t.TempDir()
	fetcher := &stubFetcher{err: stderrors.New("403 forbidden")}
	svc := NewService(fetcher, nil)

	_, err := svc.ObtainRawFile(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.IsDataUnavailable(err))

	// No partial file may satisfy cache detection on a later run.
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".csv")
	}
}

func TestObtainRawFile_PartialWriteIsCleanedUp(t *testing.T) {
	dir := t.TempDir()
	// Fetcher writes the temp file, then fails.
	fetcher := &fetcherWithPartial{}
	svc := NewService(fetcher, nil)

	_, err := svc.ObtainRawFile(context.Background(), dir)
	require.Error(t, err)
	assert.True(t, errors.IsDataUnavailable(err))

	_, statErr := os.Stat(filepath.Join(dir, CacheFileName+downloadSuffix))
	assert.True(t, os.IsNotExist(statErr), "temp file must be removed on failure")
}

type fetcherWithPartial struct{}

func (f *fetcherWithPartial) Fetch(_ context.Context, dest string) error {
	if err := os.WriteFile(dest, []byte("trunca"), 0644); err != nil {
		return err
	}
	return stderrors.New("connection reset mid-stream")
}

func TestObtainRawFile_NoFetcherConfigured(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.ObtainRawFile(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsDataUnavailable(err))
}

func TestNewObjectStoreFetcher_RequiresCredentials(t *testing.T) {
	tests := []struct {
		name    string
		remote  config.RemoteConfig
		wantErr bool
	}{
		{
			name: "complete credentials",
			remote: config.RemoteConfig{
				Endpoint: "s3.eu-central-003.backblazeb2.com",
				Bucket:   "salary-survey",
				KeyID:    "id",
				Key:      "secret",
				FileID:   "survey_results.csv",
				UseSSL:   true,
			},
			wantErr: false,
		},
		{
			name:    "missing credentials",
			remote:  config.RemoteConfig{Endpoint: "s3.eu-central-003.backblazeb2.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher, err := NewObjectStoreFetcher(tt.remote, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeConfig))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, fetcher)
		})
	}
}
