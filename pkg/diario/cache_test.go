package diario

import (
	"testing"
	"time"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDiskCache failed: %v", err)
	}

	url := "https://example.com/do/2025/03_Mar/07.pdf"
	result := EditionResult{Found: true, Text: "DECRETO Nº 224/2025"}

	if err := cache.Set(url, result); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cached, ok := cache.Get(url)
	if !ok {
		t.Fatalf("Expected cache hit")
	}
	if cached != result {
		t.Errorf("Expected %+v, got %+v", result, cached)
	}
}

func TestDiskCacheNegativeResult(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDiskCache failed: %v", err)
	}

	url := "https://example.com/do/2025/03_Mar/09.pdf"
	if err := cache.Set(url, EditionResult{Found: false}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	cached, ok := cache.Get(url)
	if !ok {
		t.Fatalf("Negative results must be cached")
	}
	if cached.Found {
		t.Errorf("Expected Found=false, got %+v", cached)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewDiskCache failed: %v", err)
	}

	if _, ok := cache.Get("https://example.com/nunca-visto.pdf"); ok {
		t.Errorf("Expected cache miss")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir(), -time.Second)
	if err != nil {
		t.Fatalf("NewDiskCache failed: %v", err)
	}

	url := "https://example.com/do/2025/03_Mar/10.pdf"
	if err := cache.Set(url, EditionResult{Found: true, Text: "texto"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, ok := cache.Get(url); ok {
		t.Errorf("Expected expired entry to miss")
	}
}
