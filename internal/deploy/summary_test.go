package deploy

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, &Result{
		Subscription:   "Test Subscription",
		ResourceGroup:  "deltashare-rg",
		StorageAccount: "deltashare1700000000",
		FunctionApp:    "deltashare-func-1700000000",
		BaseURL:        "https://deltashare-func-1700000000.azurewebsites.net",
		Published:      true,
	})

	out := buf.String()
	assert.Contains(t, out, "https://deltashare-func-1700000000.azurewebsites.net")
	assert.Contains(t, out, "az functionapp keys list --name deltashare-func-1700000000 --resource-group deltashare-rg")
	assert.Contains(t, out, "/api/health")
	assert.Contains(t, out, "/api/metadata")
	assert.Contains(t, out, "/api/download")
	assert.Contains(t, out, "verify --app deltashare-func-1700000000")
}
