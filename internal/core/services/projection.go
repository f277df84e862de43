package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/gifex/internal/core/domain"
)

const srcKey = "src"

// Project turns the value found under listKey into a ResultSet of
// identifier -> src link.
//
// list must be an object or an array; anything else is reported as a
// NotFoundError for listKey. Array entries are identified by their decimal
// index. Entries are taken in document order. An entry is usable when it is
// an object with a string src; what happens to the others depends on policy.
func Project(
	list domain.Value,
	listKey string,
	policy domain.ProjectionPolicy,
) (*domain.ResultSet, []domain.EntryIssue, error) {
	entries, ok := listEntries(list)
	if !ok {
		return nil, nil, &domain.NotFoundError{Key: listKey, Reason: "wrong shape: " + list.Kind().String()}
	}

	records := make([]domain.GifRecord, 0, len(entries))
	var issues []domain.EntryIssue

	for _, m := range entries {
		src, reason := entrySrc(m.Value)
		if reason == "" {
			records = append(records, domain.GifRecord{ID: m.Key, Src: src})
			continue
		}

		switch policy {
		case domain.PolicyStrict:
			return nil, nil, &domain.MalformedEntryError{ID: m.Key, Reason: reason}
		case domain.PolicyKeep:
			records = append(records, domain.GifRecord{ID: m.Key})
		case domain.PolicySkip:
		}
		issues = append(issues, domain.EntryIssue{ID: m.Key, Reason: reason})
	}

	return domain.NewResultSet(records), issues, nil
}

// listEntries returns the members of an object, or the items of an array
// keyed by index.
func listEntries(list domain.Value) ([]domain.Member, bool) {
	if obj, ok := list.AsObject(); ok {
		return obj.Members(), true
	}
	items, ok := list.AsArray()
	if !ok {
		return nil, false
	}
	entries := make([]domain.Member, len(items))
	for i, item := range items {
		entries[i] = domain.Member{Key: strconv.Itoa(i), Value: item}
	}
	return entries, true
}

// entrySrc returns the src of an entry, or a reason it has none.
func entrySrc(entry domain.Value) (string, string) {
	obj, ok := entry.AsObject()
	if !ok {
		return "", "entry is " + entry.Kind().String() + ", not object"
	}
	v, ok := obj.Get(srcKey)
	if !ok {
		return "", "missing src"
	}
	src, ok := v.AsString()
	if !ok {
		return "", "src is " + v.Kind().String() + ", not string"
	}
	if strings.TrimSpace(src) == "" {
		return "", "src is empty"
	}
	return src, ""
}
