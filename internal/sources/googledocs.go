package sources

import (
	"context"
	"strings"
	"sync"
	"time"

	"aligntrack/internal/logging"
	"aligntrack/internal/snapshot"
)

// GoogleDocs is the Google Docs integration. Document type is inferred from
// the document id; content comes from demo fixtures until real credentials
// are wired up.
type GoogleDocs struct {
	mu        sync.Mutex
	connected []connectedDoc
	fixtures  map[snapshot.DocKind]string
}

type connectedDoc struct {
	ID          string
	Kind        snapshot.DocKind
	ConnectedAt time.Time
}

func NewGoogleDocs() *GoogleDocs {
	return &GoogleDocs{fixtures: map[snapshot.DocKind]string{
		snapshot.KindPRD:      fixturePRD,
		snapshot.KindPRFAQ:    fixturePRFAQ,
		snapshot.KindStrategy: fixtureStrategy,
	}}
}

func (g *GoogleDocs) Name() string { return "google_docs" }

// Connect registers a document. The id decides the kind: ids containing
// "prfaq" or "strategy" route there, everything else is a PRD.
func (g *GoogleDocs) Connect(docID string) snapshot.DocKind {
	kind := snapshot.KindPRD
	lower := strings.ToLower(docID)
	if strings.Contains(lower, "prfaq") {
		kind = snapshot.KindPRFAQ
	} else if strings.Contains(lower, "strategy") {
		kind = snapshot.KindStrategy
	}

	g.mu.Lock()
	g.connected = append(g.connected, connectedDoc{ID: docID, Kind: kind, ConnectedAt: time.Now()})
	g.mu.Unlock()

	logging.Sources("connected google doc %s as %s", docID, kind)
	return kind
}

// DocumentKind returns the kind a connected document was registered under.
func (g *GoogleDocs) DocumentKind(docID string) (snapshot.DocKind, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, doc := range g.connected {
		if doc.ID == docID {
			return doc.Kind, true
		}
	}
	return "", false
}

// Raw returns the raw document text for a kind.
func (g *GoogleDocs) Raw(kind snapshot.DocKind) string {
	return g.fixtures[kind]
}

// Collect returns raw text for every connected document kind.
func (g *GoogleDocs) Collect(_ context.Context) (Payload, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	raw := make(map[snapshot.DocKind]string)
	for _, doc := range g.connected {
		if text := g.fixtures[doc.Kind]; text != "" {
			raw[doc.Kind] = text
		}
	}
	return Payload{Raw: raw}, nil
}

const fixturePRD = `# Project Alignment Tool

## Overview
The Project Alignment Tool is a comprehensive system that ensures all project documentation remains synchronized across different platforms. By maintaining consistency between PRDs, PRFAQs, strategy documents, and tickets, it significantly reduces miscommunication and implementation errors.

## Problem Statement
Teams waste 4+ hours weekly reconciling inconsistent documentation across different systems. This leads to implementation errors, miscommunication, and project delays that frustrate both teams and customers.

## Solution
Our tool creates bidirectional connections between documents. When changes occur in any document, the system flags needed updates in all related documents, ensuring perfect alignment.`

const fixturePRFAQ = `# Document Sync Tool - Press Release

FOR IMMEDIATE RELEASE
Introducing the Document Sync Tool - a new solution that keeps your documentation in sync automatically.

## Frequently Asked Questions

Q: What problem does this solve?
A: Teams often have multiple documents (PRD, tickets, strategy) that get out of sync, causing confusion and implementation errors.

Q: How does it work?
A: The tool connects to all your project documents and detects changes, then suggests updates to keep everything aligned.

Q: What systems does it support?
A: We currently support Google Docs, Jira, Linear, and Confluence.`

const fixtureStrategy = `# Project Alignment Strategy

## Vision
Create the best tool for maintaining project alignment through synchronized documentation.

## Approach
Focus on simplicity and actionable suggestions, using AI and bidirectional links.

## Business Value
Reduce errors due to misalignment by 40% and save team time spent reconciling documents.`
