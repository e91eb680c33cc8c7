package tags

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/flizzeri/schemaforge/primitive"
)

// tagGrammar is one entry of the per-tag grammar table spec.md §4.F
// describes: a name, whether a non-empty payload is required, an
// optional payload-shape regex, and the build function that turns a
// validated payload into an [Annotation].
type tagGrammar struct {
	payloadRequired bool
	// repeatable tags accumulate one [Annotation] per occurrence on a
	// declaration instead of being collapsed by duplicate-tag
	// suppression (spec.md §8 Scenario S2: repeated @index tags on the
	// same entity each produce their own Index annotation).
	repeatable bool
	regex      *regexp.Regexp
	build      func(payload string) (Annotation, []primitive.Diagnostic)
}

var (
	indexPayloadRe      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(,[A-Za-z_][A-Za-z0-9_]*)*(:unique)?$`)
	fkPayloadRe         = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\.[A-Za-z_][A-Za-z0-9_]*(\s+\S+)?$`)
	decimalPayloadRe    = regexp.MustCompile(`^\d+,\d+$`)
	numberPayloadRe     = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	intPayloadRe        = regexp.MustCompile(`^\d+$`)
	renameFromPayloadRe = regexp.MustCompile(`^\S+(@\S+)?$`)
)

// grammarTable holds one entry per spec.md §3 annotation variant. It is
// built once at package init and never mutated.
var grammarTable = map[string]tagGrammar{
	"entity": {
		build: func(payload string) (Annotation, []primitive.Diagnostic) {
			if payload == "" {
				return Entity{}, nil
			}

			return Entity{Name: payload, HasName: true}, nil
		},
	},
	"pk":     {build: func(string) (Annotation, []primitive.Diagnostic) { return PK{}, nil }},
	"unique": {build: func(string) (Annotation, []primitive.Diagnostic) { return Unique{}, nil }},
	"index": {
		payloadRequired: true,
		repeatable:      true,
		regex:           indexPayloadRe,
		build:           buildIndex,
	},
	"fk": {
		payloadRequired: true,
		repeatable:      true,
		regex:           fkPayloadRe,
		build:           buildFK,
	},
	"default": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Default{Value: payload}, nil },
	},
	"renameFrom": {
		payloadRequired: true,
		regex:           renameFromPayloadRe,
		build:           buildRenameFrom,
	},
	"sqlType": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return SQLType{Type: payload}, nil },
	},
	"decimal": {
		payloadRequired: true,
		regex:           decimalPayloadRe,
		build:           buildDecimal,
	},
	"check": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Check{Expr: payload}, nil },
	},
	"version": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Version{Semver: payload}, nil },
	},
	"min": {
		payloadRequired: true,
		regex:           numberPayloadRe,
		build:           buildMin,
	},
	"max": {
		payloadRequired: true,
		regex:           numberPayloadRe,
		build:           buildMax,
	},
	"int": {build: func(string) (Annotation, []primitive.Diagnostic) { return Int{}, nil }},
	"minLength": {
		payloadRequired: true,
		regex:           intPayloadRe,
		build:           buildMinLength,
	},
	"maxLength": {
		payloadRequired: true,
		regex:           intPayloadRe,
		build:           buildMaxLength,
	},
	"pattern": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Pattern{Re: payload}, nil },
	},
	"format": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Format{Name: payload}, nil },
	},
	"email": {build: func(string) (Annotation, []primitive.Diagnostic) { return Email{}, nil }},
	"uuid":  {build: func(string) (Annotation, []primitive.Diagnostic) { return UUID{}, nil }},
	"url":   {build: func(string) (Annotation, []primitive.Diagnostic) { return URL{}, nil }},
	"description": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Description{Text: payload}, nil },
	},
	"validator": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Validator{Name: payload}, nil },
	},
	"transform": {
		payloadRequired: true,
		build:           func(payload string) (Annotation, []primitive.Diagnostic) { return Transform{Name: payload}, nil },
	},
}

func buildIndex(payload string) (Annotation, []primitive.Diagnostic) {
	unique := false

	fieldsPart := payload
	if rest, ok := strings.CutSuffix(payload, ":unique"); ok {
		unique = true
		fieldsPart = rest
	}

	fields := strings.Split(fieldsPart, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	return Index{Fields: fields, Unique: unique}, nil
}

func buildFK(payload string) (Annotation, []primitive.Diagnostic) {
	parts := strings.Fields(payload)
	ref := parts[0]

	target, field, _ := strings.Cut(ref, ".")

	onDelete, onUpdate := NoAction, NoAction

	if len(parts) > 1 {
		actions := parts[1]

		del, upd, hasUpd := strings.Cut(actions, ":")

		onDelete = coerceReferentialAction(del)
		if hasUpd {
			onUpdate = coerceReferentialAction(upd)
		}
	}

	return FK{Target: target, Field: field, OnDelete: onDelete, OnUpdate: onUpdate}, nil
}

// coerceReferentialAction implements spec.md §4.F's alias table:
// case-insensitive "setnull"/"set null" and "noaction"/"no action";
// anything else collapses to "no action".
func coerceReferentialAction(s string) ReferentialAction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cascade":
		return Cascade
	case "restrict":
		return Restrict
	case "setnull", "set null":
		return SetNull
	case "noaction", "no action":
		return NoAction
	default:
		return NoAction
	}
}

func buildDecimal(payload string) (Annotation, []primitive.Diagnostic) {
	precStr, scaleStr, _ := strings.Cut(payload, ",")

	precision, _ := strconv.Atoi(precStr)
	scale, _ := strconv.Atoi(scaleStr)

	return Decimal{Precision: precision, Scale: scale}, nil
}

func buildRenameFrom(payload string) (Annotation, []primitive.Diagnostic) {
	oldName, version, _ := strings.Cut(payload, "@")

	return RenameFrom{OldName: oldName, Version: version}, nil
}

func buildMin(payload string) (Annotation, []primitive.Diagnostic) {
	n, _ := strconv.ParseFloat(payload, 64)

	return Min{N: n}, nil
}

func buildMax(payload string) (Annotation, []primitive.Diagnostic) {
	n, _ := strconv.ParseFloat(payload, 64)

	return Max{N: n}, nil
}

func buildMinLength(payload string) (Annotation, []primitive.Diagnostic) {
	n, _ := strconv.Atoi(payload)

	return MinLength{N: n}, nil
}

func buildMaxLength(payload string) (Annotation, []primitive.Diagnostic) {
	n, _ := strconv.Atoi(payload)

	return MaxLength{N: n}, nil
}
