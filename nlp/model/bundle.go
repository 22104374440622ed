// Package model packages trained sequence models with their manifest into a
// validated, immutable bundle and resolves bundles to ready to run decoders.
package model

import (
	"archive/zip"
	"bytes"
	"io"
	"sort"
	"strconv"

	"seqlab/alg/search"
	"seqlab/util/errs"
)

// Spec describes the bundle layout of one component.
type Spec struct {
	// Component is the expected tool-name
	Component string
	// Entry is the canonical model artifact name
	Entry string
	// DefaultFactory is used when a loaded manifest names no factory
	DefaultFactory string
}

// Config holds every optional setting of a new bundle.
type Config struct {
	Language string
	// BeamSize is written as beam-size when positive
	BeamSize int
	Factory  Factory
	// Manifest holds extra entries; reserved keys are rejected
	Manifest map[string]string
}

var reservedKeys = map[string]bool{
	FORMAT_VERSION_KEY: true,
	TOOL_NAME_KEY:      true,
	LANGUAGE_KEY:       true,
	BEAM_SIZE_KEY:      true,
	FACTORY_KEY:        true,
}

// Bundle is a manifest plus named artifacts. Bundles are only handed out by
// New and Load after validation. Artifacts are copied when a bundle is built
// and every accessor returns copies, so a Bundle never changes and is safe
// for concurrent use.
type Bundle struct {
	spec      Spec
	manifest  *Manifest
	artifacts map[string]Artifact
	factory   Factory
}

// New assembles a bundle around a freshly trained model and validates it.
func New(spec Spec, cfg Config, model Artifact) (*Bundle, error) {
	if spec.Component == "" || spec.Entry == "" {
		return nil, errs.NewConfigurationError("bundle spec needs a component and an entry name")
	}
	if cfg.Factory == nil {
		return nil, errs.NewConfigurationError("missing factory for %s", spec.Component)
	}
	if cfg.Language == "" {
		return nil, errs.NewConfigurationError("missing language for %s", spec.Component)
	}
	if cfg.BeamSize < 0 {
		return nil, errs.NewConfigurationError("beam size must not be negative, got %d", cfg.BeamSize)
	}
	b := &Bundle{
		spec:      spec,
		manifest:  NewManifest(),
		artifacts: make(map[string]Artifact),
		factory:   cfg.Factory,
	}
	entries := [][2]string{
		{FORMAT_VERSION_KEY, strconv.Itoa(FORMAT_VERSION)},
		{TOOL_NAME_KEY, spec.Component},
		{LANGUAGE_KEY, cfg.Language},
		{FACTORY_KEY, cfg.Factory.Name()},
	}
	if cfg.BeamSize > 0 {
		entries = append(entries, [2]string{BEAM_SIZE_KEY, strconv.Itoa(cfg.BeamSize)})
	}
	for _, extra := range []map[string]string{cfg.Factory.Manifest(), cfg.Manifest} {
		for _, k := range sortedKeys(extra) {
			if reservedKeys[k] {
				return nil, errs.NewConfigurationError("manifest key %s is reserved", k)
			}
			entries = append(entries, [2]string{k, extra[k]})
		}
	}
	for _, entry := range entries {
		if err := b.manifest.Set(entry[0], entry[1]); err != nil {
			return nil, err
		}
	}
	entry, err := detach(model)
	if err != nil {
		return nil, errs.WrapFormat(err, "copying artifact %s", spec.Entry)
	}
	b.artifacts[spec.Entry] = entry
	for name, a := range cfg.Factory.Artifacts() {
		if name == spec.Entry || name == MANIFEST_ENTRY {
			return nil, errs.NewConfigurationError("factory artifact %s collides with a reserved entry", name)
		}
		if b.artifacts[name], err = detach(a); err != nil {
			return nil, errs.WrapFormat(err, "copying artifact %s", name)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads a serialized bundle, rebuilds its factory and validates it.
func Load(reader io.Reader, spec Spec) (*Bundle, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errs.WrapIO("reading model bundle", err)
	}
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.WrapFormat(err, "model bundle is not an archive")
	}
	b := &Bundle{spec: spec, artifacts: make(map[string]Artifact)}
	for _, f := range archive.File {
		if f.Name == MANIFEST_ENTRY {
			if b.manifest != nil {
				return nil, errs.NewFormatError("duplicate manifest")
			}
			if b.manifest, err = readEntry(f, ReadManifest); err != nil {
				return nil, err
			}
			// fail fast on bundles written by a newer format
			if err := b.checkVersion(); err != nil {
				return nil, err
			}
		}
	}
	if b.manifest == nil {
		return nil, errs.NewFormatError("missing %s", MANIFEST_ENTRY)
	}
	for _, f := range archive.File {
		if f.Name == MANIFEST_ENTRY {
			continue
		}
		if _, exists := b.artifacts[f.Name]; exists {
			return nil, errs.NewFormatError("duplicate artifact %s", f.Name)
		}
		a, err := readEntry(f, func(r io.Reader) (Artifact, error) {
			return decodeArtifact(r, f.Name, f.Comment)
		})
		if err != nil {
			return nil, err
		}
		b.artifacts[f.Name] = a
	}
	if _, exists := b.artifacts[spec.Entry]; !exists {
		return nil, errs.NewFormatError("missing canonical model entry %s", spec.Entry)
	}
	factoryName, exists := b.manifest.Get(FACTORY_KEY)
	if !exists || factoryName == "" {
		factoryName = spec.DefaultFactory
	}
	fn, exists := LookupFactory(factoryName)
	if !exists {
		return nil, errs.NewConfigurationError("no factory registered as %q", factoryName)
	}
	if b.factory, err = fn(b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func readEntry[T any](f *zip.File, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	rc, err := f.Open()
	if err != nil {
		return zero, errs.WrapFormat(err, "opening entry %s", f.Name)
	}
	defer rc.Close()
	return read(rc)
}

func (b *Bundle) checkVersion() error {
	v, exists := b.manifest.Get(FORMAT_VERSION_KEY)
	if !exists || v == "" {
		return errs.NewFormatError("missing manifest key %s", FORMAT_VERSION_KEY)
	}
	version, err := strconv.Atoi(v)
	if err != nil || version < 1 {
		return errs.NewFormatError("invalid format version %q", v)
	}
	if version > MAX_FORMAT_VERSION {
		return errs.NewFormatError("format version %d exceeds the supported maximum %d", version, MAX_FORMAT_VERSION)
	}
	return nil
}

// Validate runs the base checks, then the factory's component checks.
func (b *Bundle) Validate() error {
	for _, k := range requiredKeys {
		if v, exists := b.manifest.Get(k); !exists || v == "" {
			return errs.NewFormatError("missing manifest key %s", k)
		}
	}
	if err := b.checkVersion(); err != nil {
		return err
	}
	if component, _ := b.manifest.Get(TOOL_NAME_KEY); component != b.spec.Component {
		return errs.NewFormatError("bundle belongs to %s, expected %s", component, b.spec.Component)
	}
	if a, exists := b.artifacts[b.spec.Entry]; !exists || a == nil {
		return errs.NewFormatError("missing canonical model entry %s", b.spec.Entry)
	}
	if b.factory == nil {
		return errs.NewConfigurationError("missing factory for %s", b.spec.Component)
	}
	return b.factory.Validate(b)
}

// Serialize writes the manifest, then every artifact sorted by name. An
// unchanged bundle always serializes to the same bytes.
func (b *Bundle) Serialize(writer io.Writer) error {
	zw := zip.NewWriter(writer)
	w, err := zw.CreateHeader(&zip.FileHeader{Name: MANIFEST_ENTRY, Method: zip.Deflate})
	if err != nil {
		return err
	}
	if err := b.manifest.Write(w); err != nil {
		return err
	}
	for _, name := range b.ArtifactNames() {
		a := b.artifacts[name]
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Comment: a.Kind().String()})
		if err != nil {
			return err
		}
		if err := encodeArtifact(w, name, a); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Manifest returns a copy of the bundle's manifest.
func (b *Bundle) Manifest() *Manifest {
	return b.manifest.Copy()
}

func (b *Bundle) Get(key string) (string, bool) {
	return b.manifest.Get(key)
}

func (b *Bundle) Language() string {
	v, _ := b.manifest.Get(LANGUAGE_KEY)
	return v
}

func (b *Bundle) Component() string {
	return b.spec.Component
}

func (b *Bundle) Spec() Spec {
	return b.spec
}

func (b *Bundle) Factory() Factory {
	return b.factory
}

// Artifact returns a copy of the named artifact.
func (b *Bundle) Artifact(name string) (Artifact, bool) {
	a, exists := b.artifacts[name]
	if !exists {
		return nil, false
	}
	return b.copyOf(name, a), true
}

// Entry returns a copy of the canonical model artifact.
func (b *Bundle) Entry() Artifact {
	return b.copyOf(b.spec.Entry, b.artifacts[b.spec.Entry])
}

// copyOf panics if a stored artifact no longer round trips through its codec;
// New and Load only store artifacts that do.
func (b *Bundle) copyOf(name string, a Artifact) Artifact {
	c, err := detach(a)
	if err != nil {
		panic("artifact " + name + " cannot be copied: " + err.Error())
	}
	return c
}

func (b *Bundle) ArtifactNames() []string {
	names := make([]string, 0, len(b.artifacts))
	for name := range b.artifacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecodingModel resolves the canonical entry to a decoder.
func (b *Bundle) DecodingModel() (search.SequenceClassifier, error) {
	return ResolveDecodingModel(b.Entry(), b.manifest)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
