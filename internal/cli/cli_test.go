package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunmann/vecbench/pkg/benchutil"
	"github.com/eunmann/vecbench/pkg/report"
	"github.com/eunmann/vecbench/pkg/s3upload"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	err := execute(context.Background(), root, args)
	return out.String(), err
}

// quickBench keeps benchmark runs in tests to a single iteration.
func quickBench(t *testing.T) {
	t.Helper()
	prev := benchutil.BenchTime()
	t.Cleanup(func() { _ = benchutil.SetBenchTime(prev) })
	t.Setenv(BenchTimeEnv, "1x")
}

func TestRunNoArgsPrintsHelp(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "verify")
}

func TestRunUnknownCommand(t *testing.T) {
	_, err := runCLI(t, "frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vecbench version dev")
}

func TestList(t *testing.T) {
	out, err := runCLI(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 24)
	assert.Equal(t, "Vec push small", lines[0])
	assert.Contains(t, lines, "SmallVec remove large")
}

func TestListFilter(t *testing.T) {
	out, err := runCLI(t, "list", "--filter", "^EcoVec clone")
	require.NoError(t, err)
	assert.Equal(t, "EcoVec clone small\nEcoVec clone large\n", out)

	_, err = runCLI(t, "list", "--filter", "(")
	assert.ErrorContains(t, err, "--filter")
}

func TestVerify(t *testing.T) {
	out, err := runCLI(t, "verify", "--size", "0,5,1025")
	require.NoError(t, err)
	assert.Equal(t, 9, strings.Count(out, "✓"))
	assert.NotContains(t, out, "✗")
}

func TestVerifySelectedVariants(t *testing.T) {
	out, err := runCLI(t, "verify", "--variant", "ecovec,SmallVec", "--size", "3")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "✓"))
	assert.Contains(t, out, "EcoVec")
	assert.Contains(t, out, "SmallVec")
	assert.NotContains(t, out, "✓ Vec ")
}

func TestVerifyUnknownVariant(t *testing.T) {
	_, err := runCLI(t, "verify", "--variant", "LinkedList")
	assert.ErrorContains(t, err, `unknown --variant "LinkedList"`)
}

func TestVerifyRejectsNegativeSize(t *testing.T) {
	_, err := runCLI(t, "verify", "--size", "-1")
	assert.ErrorContains(t, err, "invalid --size")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	_, err := runCLI(t, "run", "--format", "xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
}

func TestRunParquetNeedsDestination(t *testing.T) {
	_, err := runCLI(t, "run", "--format", "parquet")
	assert.ErrorContains(t, err, "parquet output requires")
}

func TestRunFilterMatchesNothing(t *testing.T) {
	_, err := runCLI(t, "run", "--filter", "LinkedList")
	assert.ErrorContains(t, err, "no benchmark targets")
}

func TestRunJSONToStdout(t *testing.T) {
	quickBench(t)

	out, err := runCLI(t, "run", "--filter", "^Vec push small$", "--format", "json", "--no-settle")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	require.Len(t, rep.Results, 1)
	assert.Equal(t, "Vec push small", rep.Results[0].Target)
	assert.Equal(t, "1x", rep.BenchTime)
}

func TestRunFlagOverridesEnvBenchTime(t *testing.T) {
	quickBench(t)

	out, err := runCLI(t, "run", "--filter", "^EcoVec random access small$",
		"--format", "json", "--benchtime", "3x", "--no-settle")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, "3x", rep.BenchTime)
}

func TestRunWritesFileByExtension(t *testing.T) {
	quickBench(t)
	path := filepath.Join(t.TempDir(), "results.csv")

	out, err := runCLI(t, "run", "--filter", "^SmallVec clone", "--out", path, "--no-settle")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "run_id,target,"))
	assert.Contains(t, lines[1], "SmallVec clone small")
	assert.Contains(t, lines[2], "SmallVec clone large")
}

type fakePut struct {
	input *s3.PutObjectInput
	body  []byte
}

func (f *fakePut) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestRunUploadsToS3(t *testing.T) {
	quickBench(t)

	fake := &fakePut{}
	prev := newUploader
	newUploader = func(context.Context) (*s3upload.Client, error) {
		return s3upload.NewClientWithAPI(fake), nil
	}
	t.Cleanup(func() { newUploader = prev })

	var logs bytes.Buffer
	prevOut := logOutput
	logOutput = &logs
	t.Cleanup(func() { logOutput = prevOut })

	path := filepath.Join(t.TempDir(), "out.parquet")
	_, err := runCLI(t, "run", "--filter", "^Vec clone small$", "--out", path,
		"--s3", "s3://bench-results/vecbench/", "--no-settle")
	require.NoError(t, err)

	require.NotNil(t, fake.input)
	assert.Equal(t, "bench-results", aws.ToString(fake.input.Bucket))
	key := aws.ToString(fake.input.Key)
	assert.True(t, strings.HasPrefix(key, "vecbench/"), key)
	assert.True(t, strings.HasSuffix(key, ".parquet"), key)
	assert.Equal(t, report.FormatParquet.ContentType(), aws.ToString(fake.input.ContentType))

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, onDisk, fake.body)

	assert.Contains(t, logs.String(), `"message":"report uploaded"`)
	assert.Contains(t, logs.String(), `"uri":"s3://bench-results/`+key+`"`)
}

func TestRunInvalidS3URI(t *testing.T) {
	quickBench(t)
	_, err := runCLI(t, "run", "--filter", "^Vec push small$", "--format", "csv",
		"--s3", "https://example.com/x", "--no-settle")
	assert.ErrorContains(t, err, "invalid S3 URI")
}
