/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package config

import (
	"reflect"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github/sabouaram/dargo/errors"
)

// ChangeFunc is called with the freshly decoded Settings every time
// Loader's backing file changes on disk.
type ChangeFunc func(Settings)

// Loader is a thin typed front over viper: it owns one *viper.Viper,
// decodes it into a Settings on Load and on every fsnotify-driven config
// file change, and fans the decoded value out to registered watchers.
type Loader struct {
	v *viper.Viper

	mu       sync.RWMutex
	current  Settings
	watchers []ChangeFunc
}

// New builds a Loader seeded with Default and ready to bind flags before
// a config file is ever read, matching viper's usual construction order
// (defaults, then flags, then file, then env).
func New() *Loader {
	v := viper.New()
	v.SetEnvPrefix("DARGO")
	v.AutomaticEnv()

	l := &Loader{v: v, current: Default()}
	l.setDefaults()
	return l
}

func (l *Loader) setDefaults() {
	d := Default()
	l.v.SetDefault("clear_block_size", d.ClearBlockSize)
	l.v.SetDefault("compression", d.Compression.String())
	l.v.SetDefault("kdf_hash", d.KeyDerivationHash)
	l.v.SetDefault("iterations", d.Iterations)
	l.v.SetDefault("salt_size", d.SaltSize)
	l.v.SetDefault("first_slice_size", d.FirstSliceSize)
	l.v.SetDefault("other_slice_size", d.OtherSliceSize)
	l.v.SetDefault("min_digits", d.MinDigits)
	l.v.SetDefault("min_hole_size", d.MinHoleSize)
	l.v.SetDefault("hash_sidecar", d.HashSidecar)
	l.v.SetDefault("workers", d.Workers)
}

// Viper exposes the underlying viper so a caller can bind cobra flags
// onto it with viper.BindPFlag without this package importing
// cobra/pflag itself.
func (l *Loader) Viper() *viper.Viper { return l.v }

// Load reads path (any format viper supports: yaml, toml, json, ini) and
// decodes it into Settings, validating the result before returning it.
func (l *Loader) Load(path string) (Settings, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		return Settings{}, errors.New(uint16(ReadFailed), "config: reading "+path, err)
	}
	return l.decode()
}

func (l *Loader) decode() (Settings, error) {
	var s Settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			textUnmarshalerHook(),
		),
		Result: &s,
	})
	if err != nil {
		return Settings{}, errors.New(uint16(DecodeFailed), "config: building decoder", err)
	}
	if err := dec.Decode(l.v.AllSettings()); err != nil {
		return Settings{}, errors.New(uint16(DecodeFailed), "config: decoding settings", err)
	}
	if err := s.validate(); err != nil {
		return Settings{}, err
	}

	l.mu.Lock()
	l.current = s
	l.mu.Unlock()
	return s, nil
}

// Current returns the most recently decoded Settings.
func (l *Loader) Current() Settings {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// OnChange registers fn to be called with the new Settings every time the
// watched config file changes, after WatchAndReload has been started.
func (l *Loader) OnChange(fn ChangeFunc) {
	l.mu.Lock()
	l.watchers = append(l.watchers, fn)
	l.mu.Unlock()
}

// WatchAndReload starts an fsnotify watch on the loaded config file via
// viper.WatchConfig; each change is re-decoded and fanned out to every
// registered ChangeFunc. It returns immediately; viper runs the watch on
// its own goroutine.
func (l *Loader) WatchAndReload() {
	l.v.OnConfigChange(func(_ fsnotify.Event) {
		s, err := l.decode()
		if err != nil {
			return
		}
		l.mu.RLock()
		watchers := append([]ChangeFunc(nil), l.watchers...)
		l.mu.RUnlock()
		for _, w := range watchers {
			w(s)
		}
	})
	l.v.WatchConfig()
}

// textUnmarshalerHook lets mapstructure decode a plain string into any
// type implementing encoding.TextUnmarshaler, which is how
// streamcompress.Algorithm is bound from a config value such as
// "compression: zstd".
func textUnmarshalerHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		ptrTo := reflect.PointerTo(to)
		if !ptrTo.Implements(reflect.TypeOf((*interface {
			UnmarshalText([]byte) error
		})(nil)).Elem()) {
			return data, nil
		}
		v := reflect.New(to)
		if err := v.Interface().(interface {
			UnmarshalText([]byte) error
		}).UnmarshalText([]byte(data.(string))); err != nil {
			return data, err
		}
		return v.Elem().Interface(), nil
	}
}

func newInvalid(msg string) error {
	return errors.New(uint16(InvalidValue), "config: "+msg)
}
