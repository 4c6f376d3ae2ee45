package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const EnvPrefix = "EVENTCAL_"

type Application struct {
	Listen   string   `koanf:"listen" yaml:"listen"`
	Calendar Calendar `koanf:"calendar" yaml:"calendar"`
	Sweep    Sweep    `koanf:"sweep" yaml:"sweep"`
}

type Calendar struct {
	Title string `koanf:"title" yaml:"title"`
	// Seed adds the two example events at startup.
	Seed         bool   `koanf:"seed" yaml:"seed"`
	DefaultColor string `koanf:"defaultcolor" yaml:"defaultcolor"`
	// WeekStart is "monday" or "sunday".
	WeekStart string `koanf:"weekstart" yaml:"weekstart"`
}

type Sweep struct {
	Interval time.Duration `koanf:"interval" yaml:"interval"`
}

func Default() Application {
	return Application{
		Listen: ":8181",
		Calendar: Calendar{
			Title:        "Survey Sparrow Calendar",
			Seed:         true,
			DefaultColor: "#1faddc",
			WeekStart:    "monday",
		},
		Sweep: Sweep{
			Interval: 60 * time.Second,
		},
	}
}

// Normalize replaces empty or unsupported values with defaults.
func (a *Application) Normalize() {
	def := Default()
	if a.Listen == "" {
		a.Listen = def.Listen
	}
	if a.Calendar.Title == "" {
		a.Calendar.Title = def.Calendar.Title
	}
	if a.Calendar.DefaultColor == "" {
		a.Calendar.DefaultColor = def.Calendar.DefaultColor
	}
	switch strings.ToLower(a.Calendar.WeekStart) {
	case "monday", "sunday":
		a.Calendar.WeekStart = strings.ToLower(a.Calendar.WeekStart)
	default:
		log.Warnf("unsupported week start %q, using %s", a.Calendar.WeekStart, def.Calendar.WeekStart)
		a.Calendar.WeekStart = def.Calendar.WeekStart
	}
	if a.Sweep.Interval < time.Second {
		a.Sweep.Interval = def.Sweep.Interval
	}
}

func (c Calendar) FirstWeekday() time.Weekday {
	if c.WeekStart == "sunday" {
		return time.Sunday
	}
	return time.Monday
}

// Load reads defaults, then the YAML file at path (if it exists), then
// EVENTCAL_* environment variables, each layer overriding the previous one.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if os.IsNotExist(err) {
				log.Infof("Config file not found at %s, using defaults and environment variables", path)
			} else {
				log.Errorf("error loading config from YAML: %v", err)
				return Application{}, err
			}
		} else {
			log.Infof("Loaded configuration from file: %s", path)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}
	app.Normalize()

	return app, nil
}
