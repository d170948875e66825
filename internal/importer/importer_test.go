package importer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/JungleDome/FirScript/internal/registry"
	"github.com/JungleDome/FirScript/internal/script"
	"github.com/JungleDome/FirScript/internal/validator"
	goerrors "github.com/JungleDome/FirScript/pkg/errors"
)

type ImporterTestSuite struct {
	suite.Suite
}

func TestImporterSuite(t *testing.T) {
	suite.Run(t, new(ImporterTestSuite))
}

func (suite *ImporterTestSuite) newImporter() *Importer {
	return New(registry.New())
}

func (suite *ImporterTestSuite) addScript(im *Importer, name, source string, kind script.Kind, isMain bool) {
	suite.Require().NoError(im.AddSource(name, source, kind, isMain))
}

func (suite *ImporterTestSuite) TestBuildMainScriptWithoutAddingAnyFails() {
	im := suite.newImporter()

	_, err := im.BuildMainScript()
	suite.Require().Error(err)

	var typed *goerrors.EntrypointNotFoundError
	suite.Require().ErrorAs(err, &typed)
}

func (suite *ImporterTestSuite) TestBuildMainScriptRunsSetupFreeLibrary() {
	im := suite.newImporter()
	suite.addScript(im, "main", "def f(a, b):\n    return a + b\nexport = {\"f\": f}\n", script.KindLibrary, true)

	ctx, err := im.BuildMainScript()
	suite.Require().NoError(err)

	exported, ok := ctx.GetExport()
	suite.Require().True(ok)
	suite.NotNil(exported)
}

func (suite *ImporterTestSuite) TestImportScriptResolvesLibraryExport() {
	im := suite.newImporter()
	suite.addScript(im, "helpers", "def add(a, b):\n    return a + b\nexport = {\"add\": add}\n", script.KindLibrary, false)
	suite.addScript(im, "main",
		"helpers = import_script(\"helpers\")\n"+
			"def setup():\n    x = 0\n"+
			"def process():\n    strategy.long()\n",
		script.KindStrategy, true)

	ctx, err := im.BuildMainScript()
	suite.Require().NoError(err)
	suite.Require().NoError(ctx.RunSetup())
}

func (suite *ImporterTestSuite) TestImportScriptMemoizesResolution() {
	im := suite.newImporter()
	suite.addScript(im, "lib", "def f():\n    return 1\nexport = {\"f\": f}\n", script.KindLibrary, false)

	first, err := im.ImportScript("lib")
	suite.Require().NoError(err)

	second, err := im.ImportScript("lib")
	suite.Require().NoError(err)

	suite.Equal(reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())
}

func (suite *ImporterTestSuite) TestImportScriptMissingNameErrors() {
	im := suite.newImporter()

	_, err := im.ImportScript("nonexistent")
	suite.Require().Error(err)

	var typed *goerrors.ScriptNotFoundError
	suite.Require().ErrorAs(err, &typed)
}

func (suite *ImporterTestSuite) TestImportScriptDetectsSelfCycle() {
	im := suite.newImporter()
	// a library that, while resolving, imports itself back
	suite.addScript(im, "cyclic",
		"self_ref = import_script(\"cyclic\")\ndef f():\n    return 1\nexport = {\"f\": f}\n",
		script.KindLibrary, false)

	_, err := im.ImportScript("cyclic")
	suite.Require().Error(err)

	var typed *goerrors.CircularImportError
	suite.Require().ErrorAs(err, &typed)
}

func (suite *ImporterTestSuite) TestAddSourceWithEmptyNameGeneratesID() {
	im := suite.newImporter()

	err := im.AddSource("", "def f():\n    return 1\nexport = {\"f\": f}\n", script.KindLibrary, true)
	suite.Require().NoError(err)
	suite.NotEmpty(im.mainName)
}

func (suite *ImporterTestSuite) TestAddSourceWithInvalidSourcePropagatesParseError() {
	im := suite.newImporter()

	err := im.AddSource("bad", "def f(:\n    return 1\n", script.KindLibrary, true)
	suite.Require().Error(err)

	var typed *goerrors.ParseError
	suite.Require().ErrorAs(err, &typed)
}

func (suite *ImporterTestSuite) TestContextAccessorReturnsBuiltContext() {
	im := suite.newImporter()
	suite.addScript(im, "main", "def f():\n    return 1\nexport = {\"f\": f}\n", script.KindLibrary, true)

	ctx, err := im.BuildMainScript()
	suite.Require().NoError(err)

	got, ok := im.Context("main")
	suite.Require().True(ok)
	suite.Same(ctx, got)
}

func (suite *ImporterTestSuite) TestFirstAddedScriptBecomesMainWhenNoneDesignated() {
	im := suite.newImporter()
	_, err := validator.Parse("def f():\n    return 1\nexport = {\"f\": f}\n", "auto-main", script.KindLibrary)
	suite.Require().NoError(err)

	suite.addScript(im, "auto-main", "def f():\n    return 1\nexport = {\"f\": f}\n", script.KindLibrary, false)
	suite.Equal("auto-main", im.mainName)
}
