package namefind

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"seqlab/eval"
	nlp "seqlab/nlp/types"
)

// MisclassifiedListener writes every sample the name finder got wrong.
type MisclassifiedListener struct {
	Writer io.Writer
}

var _ EvaluationMonitor = &MisclassifiedListener{}

func (l *MisclassifiedListener) CorrectlyClassified(reference, predicted *nlp.NameSample) {}

func (l *MisclassifiedListener) Misclassified(reference, predicted *nlp.NameSample) {
	fn, fp := spanDiff(reference.Names, predicted.Names), spanDiff(predicted.Names, reference.Names)
	fmt.Fprintf(l.Writer, "Expected: %v\nPredicted: %v\n", reference, predicted)
	if len(fn) > 0 {
		fmt.Fprintf(l.Writer, "False negatives: %s\n", strings.Join(nlp.SpansToStrings(fn, reference.Tokens), " | "))
	}
	if len(fp) > 0 {
		fmt.Fprintf(l.Writer, "False positives: %s\n", strings.Join(nlp.SpansToStrings(fp, predicted.Tokens), " | "))
	}
	fmt.Fprintln(l.Writer)
}

// spanDiff returns the spans of a missing from b.
func spanDiff(a, b []nlp.Span) []nlp.Span {
	in := make(map[nlp.Span]bool, len(b))
	for _, s := range b {
		in[s] = true
	}
	var retval []nlp.Span
	for _, s := range a {
		if !in[s] {
			retval = append(retval, s)
		}
	}
	return retval
}

// DetailedFMeasureListener pools counts per name type.
type DetailedFMeasureListener struct {
	samples int
	total   eval.FMeasure
	types   map[string]*eval.FMeasure
}

var _ EvaluationMonitor = &DetailedFMeasureListener{}

func NewDetailedFMeasureListener() *DetailedFMeasureListener {
	return &DetailedFMeasureListener{types: make(map[string]*eval.FMeasure)}
}

func (l *DetailedFMeasureListener) CorrectlyClassified(reference, predicted *nlp.NameSample) {
	l.add(reference, predicted)
}

func (l *DetailedFMeasureListener) Misclassified(reference, predicted *nlp.NameSample) {
	l.add(reference, predicted)
}

func (l *DetailedFMeasureListener) add(reference, predicted *nlp.NameSample) {
	l.samples++
	l.total.Add(Compare(reference.Names, predicted.Names))
	byType := make(map[string][2][]nlp.Span)
	for _, s := range reference.Names {
		pair := byType[s.Type]
		pair[0] = append(pair[0], s)
		byType[s.Type] = pair
	}
	for _, s := range predicted.Names {
		pair := byType[s.Type]
		pair[1] = append(pair[1], s)
		byType[s.Type] = pair
	}
	for typ, pair := range byType {
		stats, exists := l.types[typ]
		if !exists {
			stats = new(eval.FMeasure)
			l.types[typ] = stats
		}
		stats.Add(Compare(pair[0], pair[1]))
	}
}

// Type returns the pooled counts of one name type.
func (l *DetailedFMeasureListener) Type(typ string) *eval.FMeasure {
	if stats, exists := l.types[typ]; exists {
		return stats
	}
	return new(eval.FMeasure)
}

func (l *DetailedFMeasureListener) Total() *eval.FMeasure {
	return &l.total
}

// Report formats one row per type after a TOTAL row.
func (l *DetailedFMeasureListener) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Evaluated %d samples with %d entities; found: %d entities; correct: %d.\n",
		l.samples, l.total.ConditionPositives(), l.total.TestPositives(), l.total.TP)
	w := tabwriter.NewWriter(&b, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Type\tTarget\tTP\tFP\tPrecision\tRecall\tF-Measure\t")
	row := func(name string, r *eval.FMeasure) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t\n", name, r.ConditionPositives(), r.TP, r.FP,
			percent(r.Precision()), percent(r.Recall()), percent(r.F1()))
	}
	row("TOTAL", &l.total)
	names := make([]string, 0, len(l.types))
	for typ := range l.types {
		names = append(names, typ)
	}
	sort.Strings(names)
	for _, typ := range names {
		row(typ, l.types[typ])
	}
	w.Flush()
	return b.String()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
