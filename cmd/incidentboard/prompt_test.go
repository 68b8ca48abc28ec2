package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func TestPromptLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world \n"))
	var out bytes.Buffer

	got, err := promptLine(reader, "Title", &out)
	if err != nil {
		t.Fatalf("promptLine failed: %v", err)
	}
	if got != "hello world" {
		t.Errorf("promptLine = %q; want %q", got, "hello world")
	}
	if !strings.Contains(out.String(), "Title: ") {
		t.Errorf("prompt not written: %q", out.String())
	}
}

func TestPromptLine_EOFAfterPartialInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("partial"))
	var out bytes.Buffer

	got, err := promptLine(reader, "Title", &out)
	if err != nil {
		t.Fatalf("promptLine failed: %v", err)
	}
	if got != "partial" {
		t.Errorf("promptLine = %q; want %q", got, "partial")
	}
}

func TestPromptBool(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Yes\n", true},
		{"n\n", false},
		{"\n", false},
		{"maybe\n", false},
	}

	for _, tc := range cases {
		reader := bufio.NewReader(strings.NewReader(tc.input))
		var out bytes.Buffer

		got, err := promptBool(reader, "Anonymous", &out)
		if err != nil {
			t.Fatalf("promptBool(%q) failed: %v", tc.input, err)
		}
		if got != tc.want {
			t.Errorf("promptBool(%q) = %v; want %v", tc.input, got, tc.want)
		}
	}
}

func TestPromptPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	got, err := promptPassword(&out)
	if err != nil {
		t.Fatalf("promptPassword failed: %v", err)
	}
	if got != "secret" {
		t.Errorf("promptPassword = %q; want %q", got, "secret")
	}
	if !strings.Contains(out.String(), "Password: ") {
		t.Errorf("prompt not written: %q", out.String())
	}
}
