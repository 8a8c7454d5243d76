package links

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const ogPage = `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title - Site Name</title>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG description here.">
<meta property="og:image" content="https://cdn.example.com/hero.png">
<meta name="description" content="Plain meta description.">
<link rel="icon" href="/static/favicon.ico">
</head>
<body><p>hello</p></body>
</html>`

const plainPage = `<html>
<head>
<title>  Just a Title  </title>
<meta name="description" content="Only the plain description.">
</head>
<body></body>
</html>`

func TestFetchPrefersOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "Mozilla/5.0" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte(ogPage))
	}))
	defer srv.Close()

	meta, err := NewScraper(5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if meta.Title != "OG Title" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "OG description here." {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Image != "https://cdn.example.com/hero.png" {
		t.Errorf("Image = %q", meta.Image)
	}
	if want := srv.URL + "/static/favicon.ico"; meta.Favicon != want {
		t.Errorf("Favicon = %q, want %q", meta.Favicon, want)
	}
}

func TestFetchFallsBackToTitleAndMetaDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(plainPage))
	}))
	defer srv.Close()

	meta, err := NewScraper(5*time.Second).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if meta.Title != "Just a Title" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Description != "Only the plain description." {
		t.Errorf("Description = %q", meta.Description)
	}
	if meta.Image != "" || meta.Favicon != "" {
		t.Errorf("unexpected image/favicon: %+v", meta)
	}
}

func TestFetchNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewScraper(5*time.Second).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("want error for 404 page")
	}
}

func TestFetchTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	if _, err := NewScraper(20*time.Millisecond).Fetch(context.Background(), srv.URL); err == nil {
		t.Fatal("want timeout error")
	}
}
