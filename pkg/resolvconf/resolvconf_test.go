package resolvconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	content := `# manual edit
search corp.example internal.example
nameserver 10.0.0.1
nameserver 10.0.0.2
options timeout:2
`
	rc := Parse(content)

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, rc.Nameservers)
	assert.Equal(t, []string{"corp.example", "internal.example"}, rc.SearchDomains)
	assert.Equal(t, []string{"options timeout:2"}, rc.ExtraLines)
}

func TestAppendOnlyMerge(t *testing.T) {
	rc := Parse("nameserver 10.0.0.1\n")

	// 기존 항목과 같은 값을 추가해도 중복 제거하지 않는다
	rc.AddNameserver("8.8.8.8")
	rc.AddNameserver("10.0.0.1")
	rc.AddSearchDomain("example.com")

	expected := "search example.com\n" +
		"nameserver 10.0.0.1\n" +
		"nameserver 8.8.8.8\n" +
		"nameserver 10.0.0.1\n"
	assert.Equal(t, expected, rc.String())
}

func TestParseEmpty(t *testing.T) {
	rc := Parse("")
	assert.Empty(t, rc.Nameservers)
	assert.Empty(t, rc.SearchDomains)
	assert.Equal(t, "", rc.String())
}
