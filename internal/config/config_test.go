package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) writeTemp(contents string) string {
	dir := suite.T().TempDir()
	path := filepath.Join(dir, "registry.yaml")
	suite.Require().NoError(os.WriteFile(path, []byte(contents), 0o644))

	return path
}

func (suite *ConfigTestSuite) TestLoadValidConfig() {
	path := suite.writeTemp("input_overrides:\n  length: 20\ncolumn_mapping:\n  close: c\n")

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Equal(20, cfg.InputOverrides["length"])
	suite.Equal("c", cfg.ColumnMapping["close"])
}

func (suite *ConfigTestSuite) TestLoadMissingFileErrors() {
	_, err := Load(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestLoadInvalidYAMLErrors() {
	path := suite.writeTemp("input_overrides: [this, is, a, list, not, a, map]\n")

	_, err := Load(path)
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestLoadRejectsEmptyColumnMappingValue() {
	path := suite.writeTemp("column_mapping:\n  close: \"\"\n")

	_, err := Load(path)
	suite.Require().Error(err)
}

func (suite *ConfigTestSuite) TestLoadEmptyConfigIsValid() {
	path := suite.writeTemp("")

	cfg, err := Load(path)
	suite.Require().NoError(err)
	suite.Nil(cfg.InputOverrides)
}
