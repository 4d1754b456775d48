package serviceImp

import (
	"sort"
	"strings"

	"fertiq/entities"
	"fertiq/pkg/kb/repository"
	"fertiq/pkg/kb/service"
)

type kbSvc struct{ r repository.KBRepository }

func New(r repository.KBRepository) service.KBService { return &kbSvc{r: r} }

func chunkText(text string, maxRunes int) []string {
	if maxRunes <= 0 {
		maxRunes = 1000
	}
	var parts []string
	var cur strings.Builder
	count := 0
	for _, r := range text {
		cur.WriteRune(r)
		count++
		if count >= maxRunes && r == '\n' {
			parts = append(parts, cur.String())
			cur.Reset()
			count = 0
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, cur.String())
	}
	return parts
}

func (s *kbSvc) UpsertDocument(title, tags, text, sourceURL string) (*entities.KBDocument, int, error) {
	d := &entities.KBDocument{Title: title, Tags: tags, SourceURL: sourceURL}
	if err := s.r.CreateDoc(d); err != nil {
		return nil, 0, err
	}

	chs := chunkText(text, 1000)
	rows := make([]entities.KBChunk, len(chs))
	for i := range chs {
		rows[i] = entities.KBChunk{DocID: d.DocID, Ord: i, Text: chs[i]}
	}
	if err := s.r.BulkInsertChunks(rows); err != nil {
		return nil, 0, err
	}
	return d, len(rows), nil
}

// Search scores chunks by how many of the query terms they contain.
func (s *kbSvc) Search(query string, k int) ([]entities.KBChunk, error) {
	q := strings.TrimSpace(query)
	if q == "" || k <= 0 {
		return nil, nil
	}
	terms := strings.Fields(strings.ToLower(q))

	chunks, err := s.r.AllChunks()
	if err != nil {
		return nil, err
	}

	type scored struct {
		ch entities.KBChunk
		sc int
	}
	var hits []scored
	for _, ch := range chunks {
		low := strings.ToLower(ch.Text)
		sc := 0
		for _, t := range terms {
			if strings.Contains(low, t) {
				sc++
			}
		}
		if sc > 0 {
			hits = append(hits, scored{ch: ch, sc: sc})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].sc > hits[j].sc })

	if k > len(hits) {
		k = len(hits)
	}
	out := make([]entities.KBChunk, 0, k)
	for i := 0; i < k; i++ {
		out = append(out, hits[i].ch)
	}
	return out, nil
}

func (s *kbSvc) DocsMeta(ids []uint) (map[uint]entities.KBDocument, error) {
	return s.r.DocsByIDs(ids)
}

func (s *kbSvc) ListDocs() ([]entities.KBDocument, error) { return s.r.ListDocs() }
