package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockKnowledgeWriter struct {
	mock.Mock
}

func (m *MockKnowledgeWriter) Add(ctx context.Context, chunks []domain.KnowledgeChunk, namespace string) error {
	args := m.Called(ctx, chunks, namespace)
	return args.Error(0)
}

func (m *MockKnowledgeWriter) DeleteNamespace(ctx context.Context, namespace string) error {
	args := m.Called(ctx, namespace)
	return args.Error(0)
}

// seedKnowledgeBase lays out a root dir with per-domain subdirectories of
// text documents.
func seedKnowledgeBase(t *testing.T, domains map[string]map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for domainID, files := range domains {
		dir := filepath.Join(root, domainID)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		for name, content := range files {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
		}
	}
	return root
}

func TestPipeline_IngestDomain_Success(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"vastu": {
			"directions.txt": "The northeast corner belongs to water and prayer.",
			"entrance.md":    "A north-facing entrance invites prosperity.",
		},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.MatchedBy(func(chunks []domain.KnowledgeChunk) bool {
		if len(chunks) != 2 {
			return false
		}
		for _, c := range chunks {
			if c.Domain != "vastu" || c.ChunkIndex != 0 || c.ChunkCount != 1 {
				return false
			}
		}
		return true
	}), "vastu").Return(nil)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "vastu")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, 2, report.DocumentsProcessed)
	assert.Equal(t, 0, report.DocumentsSkipped)
	assert.Equal(t, 2, report.TotalChunks)
	assert.Equal(t, []string{"directions.txt", "entrance.md"}, report.ProcessedFiles)
	writer.AssertExpectations(t)
}

func TestPipeline_IngestDomain_NoFiles(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"numerology": {},
	})
	writer := new(MockKnowledgeWriter)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "numerology")

	require.NoError(t, err)
	assert.Equal(t, StatusNoFiles, report.Status)
	assert.Zero(t, report.TotalChunks)
	writer.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipeline_IngestDomain_AllDocumentsFailed(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"palmistry": {
			"corrupt.pdf": "not a pdf at all",
			"mangled.pdf": "also not a pdf",
		},
	})
	writer := new(MockKnowledgeWriter)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "palmistry")

	require.NoError(t, err)
	assert.Equal(t, StatusError, report.Status)
	assert.Equal(t, 0, report.DocumentsProcessed)
	assert.Equal(t, 2, report.DocumentsSkipped)
	assert.Contains(t, report.Error, "all documents failed extraction")
	writer.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipeline_IngestDomain_SkipsUnreadableDocuments(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"palmistry": {
			"lines.txt":  "The heart line begins below the little finger.",
			"broken.pdf": "not a pdf at all",
		},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.MatchedBy(func(chunks []domain.KnowledgeChunk) bool {
		return len(chunks) == 1 && chunks[0].Source == "lines.txt"
	}), "palmistry").Return(nil)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "palmistry")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, report.Status)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Equal(t, 1, report.DocumentsSkipped)
	assert.Equal(t, []string{"lines.txt"}, report.ProcessedFiles)
	writer.AssertExpectations(t)
}

func TestPipeline_IngestDomain_IgnoresUnsupportedExtensions(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"jyotisha": {
			"planets.txt": "Jupiter signifies wisdom and expansion.",
			"chart.png":   "binary",
		},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.Anything, "jyotisha").Return(nil)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "jyotisha")

	require.NoError(t, err)
	assert.Equal(t, 1, report.DocumentsProcessed)
	assert.Equal(t, 0, report.DocumentsSkipped)
}

func TestPipeline_IngestDomain_MissingDomainPath(t *testing.T) {
	root := t.TempDir()
	writer := new(MockKnowledgeWriter)

	p := NewPipeline(NewLocalDirSource(root), writer)
	_, err := p.IngestDomain(context.Background(), "jyotisha")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPipeline_IngestDomain_StoreFailurePropagates(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"vastu": {"a.txt": "The kitchen belongs in the southeast."},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.Anything, "vastu").
		Return(domain.NewStoreWriteError("insert failed", nil))

	p := NewPipeline(NewLocalDirSource(root), writer)
	_, err := p.IngestDomain(context.Background(), "vastu")

	require.Error(t, err)
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.ErrCodeStoreWrite, derr.Code)
}

func TestPipeline_IngestDomain_ChunkProvenance(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "Rahu amplifies obsession and unconventional paths through its placement. "
	}
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"jyotisha": {"rahu.txt": long},
	})

	var captured []domain.KnowledgeChunk
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.Anything, "jyotisha").
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]domain.KnowledgeChunk)
		}).
		Return(nil)

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.IngestDomain(context.Background(), "jyotisha")

	require.NoError(t, err)
	require.Greater(t, report.TotalChunks, 1)
	require.Len(t, captured, report.TotalChunks)
	for i, c := range captured {
		assert.Equal(t, i, c.ChunkIndex)
		assert.Equal(t, len(captured), c.ChunkCount)
		assert.Equal(t, "rahu.txt", c.Source)
		assert.Equal(t, "jyotisha", c.Domain)
	}
}

func TestPipeline_ReingestDomain_DeletesBeforeIngesting(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"numerology": {"life-path.txt": "The life path number distills the birth date."},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("DeleteNamespace", mock.Anything, "numerology").Return(nil).Once()
	writer.On("Add", mock.Anything, mock.Anything, "numerology").Return(nil).Once()

	p := NewPipeline(NewLocalDirSource(root), writer)
	report, err := p.ReingestDomain(context.Background(), "numerology")

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, report.Status)
	writer.AssertExpectations(t)
}

func TestPipeline_ReingestDomain_DeleteFailureAborts(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"numerology": {"a.txt": "content"},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("DeleteNamespace", mock.Anything, "numerology").
		Return(domain.NewStoreWriteError("delete failed", nil))

	p := NewPipeline(NewLocalDirSource(root), writer)
	_, err := p.ReingestDomain(context.Background(), "numerology")

	require.Error(t, err)
	writer.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestPipeline_IngestAll_OneFailureDoesNotStopOthers(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"jyotisha": {"planets.txt": "Saturn teaches through limitation."},
		"vastu":    {"broken.pdf": "not a pdf"},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.Anything, "jyotisha").Return(nil)

	p := NewPipeline(NewLocalDirSource(root), writer)
	reports, err := p.IngestAll(context.Background())

	require.NoError(t, err)
	require.Len(t, reports, 2)

	byDomain := make(map[string]*Report, len(reports))
	for _, r := range reports {
		byDomain[r.Domain] = r
	}
	assert.Equal(t, StatusSuccess, byDomain["jyotisha"].Status)
	// Every vastu document failed extraction, so that domain alone reports an
	// error and the healthy domain is unaffected.
	assert.Equal(t, StatusError, byDomain["vastu"].Status)
	assert.Equal(t, 1, byDomain["vastu"].DocumentsSkipped)
	assert.Zero(t, byDomain["vastu"].TotalChunks)
}

func TestPipeline_IngestAll_RecordsErrorReports(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"jyotisha": {"a.txt": "Mercury rules communication."},
	})
	writer := new(MockKnowledgeWriter)
	writer.On("Add", mock.Anything, mock.Anything, "jyotisha").
		Return(domain.NewStoreWriteError("insert failed", nil))

	p := NewPipeline(NewLocalDirSource(root), writer)
	reports, err := p.IngestAll(context.Background())

	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, StatusError, reports[0].Status)
	assert.Contains(t, reports[0].Error, "insert failed")
}

func TestLocalDirSource_ListDomains(t *testing.T) {
	root := seedKnowledgeBase(t, map[string]map[string]string{
		"vastu":    {},
		"jyotisha": {},
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0o644))

	src := NewLocalDirSource(root)
	domains, err := src.ListDomains(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"jyotisha", "vastu"}, domains)
}
