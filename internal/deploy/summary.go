package deploy

import (
	"fmt"
	"io"
)

// WriteSummary prints the human-readable success summary: resource names,
// the computed base URL, and one ready-to-run verification command per
// endpoint.
func WriteSummary(w io.Writer, result *Result) {
	fmt.Fprintf(w, "\n✓ Deployment complete\n")
	fmt.Fprintf(w, "  Subscription:    %s\n", result.Subscription)
	fmt.Fprintf(w, "  Resource group:  %s\n", result.ResourceGroup)
	fmt.Fprintf(w, "  Storage account: %s\n", result.StorageAccount)
	fmt.Fprintf(w, "  Function app:    %s\n", result.FunctionApp)
	fmt.Fprintf(w, "  Base URL:        %s\n", result.BaseURL)

	fmt.Fprintf(w, "\nRetrieve the function key:\n")
	fmt.Fprintf(w, "  az functionapp keys list --name %s --resource-group %s --query functionKeys.default -o tsv\n",
		result.FunctionApp, result.ResourceGroup)

	fmt.Fprintf(w, "\nEndpoints:\n")
	fmt.Fprintf(w, "  Health:    curl '%s/api/health?code=<FUNCTION_KEY>'\n", result.BaseURL)
	fmt.Fprintf(w, "  Metadata:  curl -X POST --data-binary @config.share '%s/api/metadata?code=<FUNCTION_KEY>'\n", result.BaseURL)
	fmt.Fprintf(w, "  Download:  curl -X POST -H 'Content-Type: application/json' \\\n")
	fmt.Fprintf(w, "               -d '{\"config\":\"...\",\"share\":\"...\",\"schema\":\"...\",\"table\":\"...\"}' \\\n")
	fmt.Fprintf(w, "               '%s/api/download?code=<FUNCTION_KEY>' -o table.csv\n", result.BaseURL)
	fmt.Fprintf(w, "  Web UI:    %s/api/web_interface\n", result.BaseURL)

	fmt.Fprintf(w, "\nVerify the deployment:\n")
	fmt.Fprintf(w, "  deltashare-deployer verify --app %s --key <FUNCTION_KEY>\n", result.FunctionApp)
}
