/**
 * Copyright 2024 The NullDB Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package common

import (
	"fmt"
	"io/ioutil"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// ClientConfig defines the configuration settings for the nulldb repl/script runner
type ClientConfig struct {
	// LogLevel is the logrus level name (debug, info, warn, error)
	LogLevel string `yaml:"logLevel"`

	// Prompt shown by the repl
	Prompt string `yaml:"prompt"`

	// Scripts are lesson script files executed on startup, in order
	Scripts []string `yaml:"scripts"`
}

// NewDefaultClientConfig returns a new default client configuration.
func NewDefaultClientConfig() *ClientConfig {
	return &ClientConfig{
		LogLevel: "info",
		Prompt:   "db> ",
	}
}

// Validate validates a ClientConfig and returns an error if it's invalid.
func (conf *ClientConfig) Validate() error {
	if conf.Prompt == "" {
		return fmt.Errorf("invalid prompt provided in config")
	}
	if _, err := log.ParseLevel(conf.LogLevel); err != nil {
		return fmt.Errorf("invalid log level provided in config: %s", conf.LogLevel)
	}
	return nil
}

// LoadFromFile loads the config from the file. It assumes that config already has the defaults.
// In the case of an error, it leaves the config untouched.
func (conf *ClientConfig) LoadFromFile(path string) {
	log.Info(fmt.Sprintf("nulldb::config::LoadFromFile; loading config from file %s", path))
	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Error(fmt.Sprintf("nulldb::config::LoadFromFile; error reading config from file %s, error %s", path, err))
		return
	}
	fconf := ClientConfig{}
	err = yaml.Unmarshal([]byte(data), &fconf)
	if err != nil {
		log.Error(fmt.Sprintf("nulldb::config::LoadFromFile; error unmarshalling config from file %s, error %s", path, err))
		return
	}

	log.WithFields(log.Fields{"config": fconf}).Debug("nulldb::config::LoadFromFile; read contents from the file")

	// populate fields
	if fconf.LogLevel != "" {
		conf.LogLevel = fconf.LogLevel
	}
	if fconf.Prompt != "" {
		conf.Prompt = fconf.Prompt
	}
	if len(fconf.Scripts) != 0 {
		conf.Scripts = fconf.Scripts
	}
}
