package drive

// ResolveWebURL returns the link stored with the file, or builds the editor URL from its ID.
func ResolveWebURL(fileID, webViewLink string) string {
	if webViewLink != "" {
		return webViewLink
	}
	if fileID == "" {
		return ""
	}
	return "https://docs.google.com/document/d/" + fileID + "/edit"
}
