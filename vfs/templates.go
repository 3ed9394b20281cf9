package vfs

// TemplateFor returns the starter content for a newly created file of the
// given language.
func TemplateFor(language string) string {
	switch language {
	case "html":
		return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n    <meta charset=\"UTF-8\">\n    <title>New Page</title>\n</head>\n<body>\n\n</body>\n</html>\n"
	case "css":
		return "/* Styles */\n"
	case "javascript":
		return "// Start coding here...\n"
	case "typescript":
		return "// Start coding here...\n"
	case "json":
		return "{\n}\n"
	case "python":
		return "# Start coding here...\n"
	case "csharp":
		return "using System;\n\nclass Program\n{\n    static void Main()\n    {\n    }\n}\n"
	case "java":
		return "public class Main {\n    public static void main(String[] args) {\n    }\n}\n"
	case "php":
		return "<?php\n\n"
	case "ruby":
		return "# Start coding here...\n"
	case "markdown":
		return "# New Document\n"
	default:
		return ""
	}
}
