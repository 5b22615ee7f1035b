// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import "testing"

func TestNewWithoutCredentials(t *testing.T) {
	c, err := New("", "us-east-1", "", "", "assets", "")
	if c != nil || err != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", c, err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New("https://s3.example.com", "us-east-1", "key", "secret", "", ""); err == nil {
		t.Error("expected an error without a bucket")
	}
}

func TestPosterURL(t *testing.T) {
	pathStyle, err := New("https://s3.example.com/", "eu-central-1", "key", "secret", "assets", "")
	if err != nil {
		t.Fatal(err)
	}
	cdn, err := New("https://s3.example.com", "eu-central-1", "key", "secret", "assets", "https://cdn.example.com/")
	if err != nil {
		t.Fatal(err)
	}
	var none *Client

	tests := []struct {
		name   string
		client *Client
		poster string
		want   string
	}{
		{"path style", pathStyle, "posters/alien.jpg", "https://s3.example.com/assets/posters/alien.jpg"},
		{"leading slash", pathStyle, "/posters/alien.jpg", "https://s3.example.com/assets/posters/alien.jpg"},
		{"cdn", cdn, "posters/alien.jpg", "https://cdn.example.com/posters/alien.jpg"},
		{"absolute passes through", cdn, "https://img.example.org/a.jpg", "https://img.example.org/a.jpg"},
		{"empty", cdn, "", ""},
		{"no storage", none, "posters/alien.jpg", "posters/alien.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.PosterURL(tt.poster); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
