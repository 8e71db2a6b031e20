package analyzer

import (
	"testing"

	"codectx/internal/domain"
)

const goSample = `package auth

import "fmt"

type Session struct {
	ID string
}

type Store interface {
	Get(id string) (Session, error)
}

func Login(user string) error {
	return fmt.Errorf("not implemented")
}

func normalize(s string) string {
	return s
}
`

func TestAnalyzeStructureGo(t *testing.T) {
	s := AnalyzeStructure(goSample, "go")

	login := findByName(s.Functions, "Login")
	if login == nil {
		t.Fatalf("expected Login in functions, got %v", s.Functions)
	}
	if !login.IsExported {
		t.Error("Login should be exported")
	}

	norm := findByName(s.Functions, "normalize")
	if norm == nil {
		t.Fatalf("expected normalize in functions, got %v", s.Functions)
	}
	if norm.IsExported {
		t.Error("normalize should not be exported")
	}

	if findByName(s.Classes, "Session") == nil {
		t.Errorf("expected Session struct, got %v", s.Classes)
	}
	if findByName(s.Interfaces, "Store") == nil {
		t.Errorf("expected Store interface, got %v", s.Interfaces)
	}

	if !containsString(s.Imports, "fmt") {
		t.Errorf("expected fmt import, got %v", s.Imports)
	}

	for _, want := range []string{"Login", "Session", "Store"} {
		if !containsString(s.Exports, want) {
			t.Errorf("expected export %q, got %v", want, s.Exports)
		}
	}
	if containsString(s.Exports, "normalize") {
		t.Errorf("normalize should not be exported, got %v", s.Exports)
	}
}

const tsSample = `import { hash } from './crypto';

export function login(user: string): boolean {
	return true;
}

function helper() {}

export class Session {
	id: string;
}

export interface User {
	name: string;
}
`

func TestAnalyzeStructureTypeScript(t *testing.T) {
	s := AnalyzeStructure(tsSample, "typescript")

	login := findByName(s.Functions, "login")
	if login == nil {
		t.Fatalf("expected login in functions, got %v", s.Functions)
	}
	if !login.IsExported {
		t.Error("login should be exported")
	}

	helper := findByName(s.Functions, "helper")
	if helper == nil {
		t.Fatalf("expected helper in functions, got %v", s.Functions)
	}
	if helper.IsExported {
		t.Error("helper should not be exported")
	}

	if findByName(s.Classes, "Session") == nil {
		t.Errorf("expected Session class, got %v", s.Classes)
	}
	if findByName(s.Interfaces, "User") == nil {
		t.Errorf("expected User interface, got %v", s.Interfaces)
	}
	if !containsString(s.Imports, "./crypto") {
		t.Errorf("expected ./crypto import, got %v", s.Imports)
	}
	for _, want := range []string{"login", "Session", "User"} {
		if !containsString(s.Exports, want) {
			t.Errorf("expected export %q, got %v", want, s.Exports)
		}
	}
}

const pySample = `import os
from collections import defaultdict

class Parser:
    def parse(self, text):
        return text

def _internal():
    pass
`

func TestAnalyzeStructurePython(t *testing.T) {
	s := AnalyzeStructure(pySample, "python")

	if findByName(s.Classes, "Parser") == nil {
		t.Errorf("expected Parser class, got %v", s.Classes)
	}

	parse := findByName(s.Functions, "parse")
	if parse == nil || !parse.IsExported {
		t.Errorf("expected exported parse function, got %v", s.Functions)
	}

	internal := findByName(s.Functions, "_internal")
	if internal == nil {
		t.Fatalf("expected _internal in functions, got %v", s.Functions)
	}
	if internal.IsExported {
		t.Error("_internal should not be exported")
	}

	for _, want := range []string{"os", "collections"} {
		if !containsString(s.Imports, want) {
			t.Errorf("expected import %q, got %v", want, s.Imports)
		}
	}
}

func TestAnalyzeStructureUnknownLanguageFallback(t *testing.T) {
	s := AnalyzeStructure("export function widget() {}", "brainfuck")

	if findByName(s.Functions, "widget") == nil {
		t.Errorf("expected fallback patterns to find widget, got %v", s.Functions)
	}
}

func TestAnalyzeStructureEmpty(t *testing.T) {
	s := AnalyzeStructure("", "go")

	if len(s.Functions)+len(s.Classes)+len(s.Interfaces)+len(s.Imports)+len(s.Exports) != 0 {
		t.Errorf("expected empty structure, got %+v", s)
	}
}

func TestConstructLines(t *testing.T) {
	s := AnalyzeStructure(goSample, "go")

	login := findByName(s.Functions, "Login")
	if login == nil {
		t.Fatal("Login not found")
	}
	if login.Line != 13 {
		t.Errorf("expected Login on line 13, got %d", login.Line)
	}
}

func TestLanguageForExt(t *testing.T) {
	cases := []struct {
		ext  string
		want string
	}{
		{".ts", "typescript"},
		{".go", "go"},
		{".py", "python"},
		{".rs", "rust"},
		{".xyz", "plaintext"},
	}
	for _, c := range cases {
		if got := LanguageForExt(c.ext); got != c.want {
			t.Errorf("LanguageForExt(%q) = %q, want %q", c.ext, got, c.want)
		}
	}
}

func findByName(list []domain.Construct, name string) *domain.Construct {
	for i := range list {
		if list[i].Name == name {
			return &list[i]
		}
	}
	return nil
}
