package search

import (
	"sync"
	"testing"
)

func sampleEntries() []Entry {
	return []Entry{
		{StudentID: "s1", Name: "Taro Yamada", KanaName: "ヤマダ タロウ", Nickname: "Taro", Email: "taro@example.com"},
		{StudentID: "s2", Name: "Hanako Suzuki", KanaName: "スズキ ハナコ", Email: "hanako@example.com"},
		{StudentID: "s3", Name: "Taro Suzuki", KanaName: "スズキ タロウ", Email: "taro.s@example.com"},
	}
}

func TestTopK_RanksAndCaps(t *testing.T) {
	idx := NewStudentIndex(sampleEntries())

	hits := idx.TopK("taro yamada", 10)
	if len(hits) == 0 {
		t.Fatal("no hits")
	}
	if hits[0].StudentID != "s1" {
		t.Fatalf("best hit = %q", hits[0].StudentID)
	}

	one := idx.TopK("taro", 1)
	if len(one) != 1 {
		t.Fatalf("k not applied: %d", len(one))
	}
}

func TestTopK_TieOrderIsStable(t *testing.T) {
	idx := NewStudentIndex(sampleEntries())
	a := idx.TopK("suzuki", 10)
	b := idx.TopK("suzuki", 10)
	if len(a) != 2 || len(b) != 2 {
		t.Fatalf("hits: %d, %d", len(a), len(b))
	}
	for i := range a {
		if a[i].StudentID != b[i].StudentID {
			t.Fatalf("order unstable: %v vs %v", a, b)
		}
	}
}

func TestTopK_KanaSingleRuneMatch(t *testing.T) {
	idx := NewStudentIndex(sampleEntries())
	hits := idx.TopK("タロウ", 10)
	if len(hits) == 0 {
		t.Fatal("kana query missed")
	}
}

func TestTopK_EmptyQueryAndZeroK(t *testing.T) {
	idx := NewStudentIndex(sampleEntries())
	if idx.TopK("", 5) != nil {
		t.Fatal("empty query must return nil")
	}
	if idx.TopK("taro", 0) != nil {
		t.Fatal("k=0 must return nil")
	}
}

func TestPutRemove(t *testing.T) {
	idx := NewStudentIndex(nil)
	idx.Put(Entry{StudentID: "x", Name: "Jiro Tanaka"})
	if len(idx.TopK("jiro", 5)) != 1 {
		t.Fatal("put not visible")
	}
	idx.Remove("x")
	if len(idx.TopK("jiro", 5)) != 0 {
		t.Fatal("remove not applied")
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	idx := NewStudentIndex(sampleEntries())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				idx.TopK("taro", 3)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				idx.Put(Entry{StudentID: "w", Name: "Worker Writer"})
				idx.Remove("w")
			}
		}()
	}
	wg.Wait()
}
