package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oenolab/winequality/internal/storage"
)

type noopLogger struct{}

func (noopLogger) Debug(msg string, args ...any) {}
func (noopLogger) Info(msg string, args ...any)  {}
func (noopLogger) Warn(msg string, args ...any)  {}
func (noopLogger) Error(msg string, args ...any) {}
func (noopLogger) Fatal(msg string, args ...any) {}

const testBlob = "\"fixed acidity\";\"volatile acidity\";\"citric acid\";\"residual sugar\";" +
	"\"chlorides\";\"free sulfur dioxide\";\"total sulfur dioxide\";\"density\";\"pH\";" +
	"\"sulphates\";\"alcohol\";\"quality\"\r\n" +
	"7.4;0.70;0.00;1.9;0.076;11;34;0.9978;3.51;0.56;9.4;5\r\n" +
	"7.8;0.88;0.00;2.6;0.098;25;67;0.9968;3.20;0.68;9.8;5\r\n"

func TestFetchFrame(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "TrainingDataset.csv", []byte(testBlob)))

	frame := FetchFrame(ctx, store, "TrainingDataset.csv", WineTransform, noopLogger{})
	require.NotNil(t, frame)
	require.Equal(t, 2, frame.Rows())

	label, ok := frame.Column("quality")
	require.True(t, ok)
	require.Equal(t, TypeInt, label.Type)
}

func TestFetchFrame_MissingKeyReturnsNil(t *testing.T) {
	store := storage.NewMemoryStore()

	frame := FetchFrame(context.Background(), store, "nope.csv", WineTransform, noopLogger{})
	require.Nil(t, frame)
}

func TestFetchFrame_BadCellReturnsNil(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	blob := "\"fixed acidity\";\"volatile acidity\";\"citric acid\";\"residual sugar\";" +
		"\"chlorides\";\"free sulfur dioxide\";\"total sulfur dioxide\";\"density\";\"pH\";" +
		"\"sulphates\";\"alcohol\";\"quality\"\r\n" +
		"oops;0.70;0.00;1.9;0.076;11;34;0.9978;3.51;0.56;9.4;5\r\n"
	require.NoError(t, store.Put(ctx, "bad.csv", []byte(blob)))

	frame := FetchFrame(ctx, store, "bad.csv", WineTransform, noopLogger{})
	require.Nil(t, frame)
}

func TestFetchFrame_GlobKeyConcatenatesParts(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "datasets/train/part-0.csv", []byte(testBlob)))
	require.NoError(t, store.Put(ctx, "datasets/train/part-1.csv", []byte(testBlob)))
	require.NoError(t, store.Put(ctx, "datasets/train/notes.txt", []byte("ignore me")))

	frame := FetchFrame(ctx, store, "datasets/train/*.csv", WineTransform, noopLogger{})
	require.NotNil(t, frame)
	require.Equal(t, 4, frame.Rows())
}

func TestFetchFrame_GlobKeyNoMatchReturnsNil(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "datasets/train/part-0.csv", []byte(testBlob)))

	frame := FetchFrame(ctx, store, "datasets/valid/*.csv", WineTransform, noopLogger{})
	require.Nil(t, frame)
}

func TestFetchFrame_GlobKeyHeaderMismatchReturnsNil(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "datasets/mixed/part-0.csv", []byte("a;b\r\n1;2\r\n")))
	require.NoError(t, store.Put(ctx, "datasets/mixed/part-1.csv", []byte("a;c\r\n3;4\r\n")))

	frame := FetchFrame(ctx, store, "datasets/mixed/*.csv", nil, noopLogger{})
	require.Nil(t, frame)
}

func TestFetchFrame_NoTransform(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "raw.csv", []byte("a;b\r\n1;2\r\n")))

	frame := FetchFrame(ctx, store, "raw.csv", nil, noopLogger{})
	require.NotNil(t, frame)

	col, ok := frame.Column("a")
	require.True(t, ok)
	require.Equal(t, TypeString, col.Type)
}
