package serviceImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fertiq/entities"
	kbRepoImp "fertiq/pkg/kb/repositoryImp"
	"fertiq/pkg/kb/service"
)

func testService(t *testing.T) service.KBService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.KBDocument{}, &entities.KBChunk{}))
	return New(kbRepoImp.New(db))
}

func TestUpsertAndSearch(t *testing.T) {
	svc := testService(t)

	doc, chunks, err := svc.UpsertDocument("Urea basics", "nitrogen,urea",
		"Urea is a nitrogen fertilizer.\nApply before rainfall for best uptake.", "")
	require.NoError(t, err)
	require.NotZero(t, doc.DocID)
	assert.Equal(t, 1, chunks)

	hits, err := svc.Search("nitrogen uptake", 5)
	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, doc.DocID, hits[0].DocID)

	hits, err = svc.Search("sugarcane", 5)
	require.NoError(t, err)
	assert.Empty(t, hits, "no match, no results")
}

func TestSearchRanksByTermCount(t *testing.T) {
	svc := testService(t)
	_, _, err := svc.UpsertDocument("A", "", "potassium only here", "")
	require.NoError(t, err)
	_, _, err = svc.UpsertDocument("B", "", "potassium and phosphorous together", "")
	require.NoError(t, err)

	hits, err := svc.Search("potassium phosphorous", 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Contains(t, hits[0].Text, "phosphorous", "chunk matching both terms first")
}

func TestChunkTextSplitsLongInput(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "soil fertility depends on organic matter and moisture balance\n"
	}
	parts := chunkText(long, 1000)
	assert.Greater(t, len(parts), 1)
}
