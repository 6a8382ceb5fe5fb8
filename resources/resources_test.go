package resources

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/ioutil"
	"path/filepath"
	"testing"
)

type s3Fake struct {
	objects map[string][]byte
}

func (fake *s3Fake) Download(key string) ([]byte, error) {
	data, ok := fake.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return data, nil
}

func (fake *s3Fake) Upload(data string, key string) error {
	fake.objects[key] = []byte(data)
	return nil
}

func TestStoreLocal(t *testing.T) {
	p := filepath.Join(t.TempDir(), "positive_words.txt")
	store := Store{}

	require.NoError(t, store.Write(p, []byte("iyi\n")))
	data, err := store.ReadAll(p)
	require.NoError(t, err)
	assert.Equal(t, "iyi\n", string(data))

	_, err = store.Open(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestStoreS3(t *testing.T) {
	fake := &s3Fake{objects: map[string][]byte{"lexicons/negative_words.txt": []byte("kötü\n")}}
	store := Store{S3: fake}

	rc, err := store.Open("s3://lexicons/negative_words.txt")
	require.NoError(t, err)
	data, err := ioutil.ReadAll(rc)
	require.NoError(t, err)
	assert.NoError(t, rc.Close())
	assert.Equal(t, "kötü\n", string(data))

	require.NoError(t, store.Write("s3://reports/run.json", []byte("{}")))
	assert.Equal(t, "{}", string(fake.objects["reports/run.json"]))

	_, err = store.Open("s3://lexicons/missing.txt")
	assert.Error(t, err)
}

func TestStoreS3NotConfigured(t *testing.T) {
	_, err := Store{}.Open("s3://lexicons/stopwords.txt")
	assert.True(t, errors.Is(err, ErrS3NotConfigured))
	assert.True(t, errors.Is(Store{}.Write("s3://r.json", nil), ErrS3NotConfigured))
}

func TestAnyS3(t *testing.T) {
	assert.True(t, AnyS3("res/a.txt", "s3://b.txt"))
	assert.False(t, AnyS3("res/a.txt", ""))
	assert.Equal(t, "lexicons/a.txt", S3Key("s3://lexicons/a.txt"))
}
