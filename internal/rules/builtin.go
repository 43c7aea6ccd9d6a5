package rules

import "github.com/vulnsweep/vulnsweep/internal/types"

// Builtin returns the compiled-in rule set. Pattern authors rely on the
// case-insensitive multi-line matching semantics documented on MatchPattern.
func Builtin() []RuleSpec {
	return []RuleSpec{
		{
			Category:       "SQL Injection",
			Severity:       types.SevHigh,
			CWE:            "CWE-89",
			Description:    "User-controlled data concatenated into a SQL statement",
			Recommendation: "Use parameterized queries or prepared statements instead of string concatenation",
			Patterns: []PatternSpec{
				{Expr: `(query|sql|statement|cmd)\s*(\+?=|:=)\s*["'].*\b(select|insert|update|delete|drop)\b.*["']\s*(\+|%|\|\|)`},
				{Expr: `(execute|exec|query|rawquery)\s*\(\s*["'].*["']\s*\+`},
				{
					Expr:        `(execute|cursor\.execute)\s*\(\s*f["'].*\{`,
					Severity:    types.SevCritical,
					Languages:   []string{"python"},
					Description: "f-string interpolation inside a SQL execute call",
				},
				{
					Expr:      `\$wpdb->query\s*\(\s*["'].*["']\s*\.`,
					Languages: []string{"php"},
				},
			},
			Whitelist: []string{
				`parameterized`,
				`prepared\s*statement`,
				`placeholder`,
				`bind\s*(param|value|variable)`,
			},
		},
		{
			Category:       "Command Injection",
			Severity:       types.SevCritical,
			CWE:            "CWE-78",
			Description:    "External input reaches a shell or process execution call",
			Recommendation: "Pass arguments as a vector, never interpolate input into a command string",
			Patterns: []PatternSpec{
				{
					Expr:      `(os\.system|os\.popen|subprocess\.(call|run|popen|check_output))\s*\(.*(\+|%s|\.format|f["'])`,
					Languages: []string{"python"},
				},
				{
					Expr:      `(shell_exec|passthru|proc_open|popen|system)\s*\(\s*\$`,
					Languages: []string{"php"},
				},
				{
					Expr:      `Runtime\.getRuntime\(\)\.exec\s*\(.*\+`,
					Languages: []string{"java"},
				},
				{
					Expr:      `exec\.Command\s*\(\s*"(sh|bash|cmd)"`,
					Severity:  types.SevHigh,
					Languages: []string{"go"},
				},
				{
					Expr:      `child_process|execSync\s*\(.*(\+|\$\{)`,
					Languages: []string{"javascript", "typescript"},
				},
				{
					Expr:      `\beval\s+["$]`,
					Severity:  types.SevHigh,
					Languages: []string{"shell"},
				},
			},
			Whitelist: []string{
				`shlex\.quote`,
				`escapeshellarg`,
				`shell\s*=\s*False`,
				`ProcessBuilder`,
			},
		},
		{
			Category:       "Cross-Site Scripting",
			Severity:       types.SevMedium,
			CWE:            "CWE-79",
			Description:    "Unescaped data rendered into HTML",
			Recommendation: "Escape output or use a templating API that escapes by default",
			Patterns: []PatternSpec{
				{
					Expr:      `\.innerHTML\s*=|document\.write(ln)?\s*\(`,
					Languages: []string{"javascript", "typescript", "html", "jsp", "asp"},
				},
				{
					Expr:      `dangerouslySetInnerHTML`,
					Languages: []string{"javascript", "typescript"},
				},
				{
					Expr:      `\|\s*safe\s*\}\}|mark_safe\s*\(`,
					Languages: []string{"python", "html"},
					Severity:  types.SevHigh,
				},
				{
					Expr:      `Response\.Write\s*\(.*request`,
					Severity:  types.SevHigh,
					Languages: []string{"asp", "csharp"},
				},
				{
					Expr:      `template\.HTML\s*\(`,
					Languages: []string{"go"},
				},
			},
			Whitelist: []string{
				`DOMPurify`,
				`sanitizeHtml|sanitize_html`,
				`escapeHtml|htmlspecialchars|html\.EscapeString`,
				`textContent`,
			},
		},
		{
			Category:       "Path Traversal",
			Severity:       types.SevHigh,
			CWE:            "CWE-22",
			Description:    "File access built from untrusted path components",
			Recommendation: "Resolve and validate paths against an allowed base directory before use",
			Patterns: []PatternSpec{
				{Expr: `(open|readfile|read_file|file_get_contents|os\.ReadFile|ioutil\.ReadFile)\s*\(.*(request|params|input|argv|query|form)`},
				{Expr: `\.\./\.\./`, Severity: types.SevMedium, Description: "Relative parent traversal sequence in a path literal"},
			},
			Whitelist: []string{
				`filepath\.Clean`,
				`secure_filename`,
				`realpath|path\.normalize`,
				`basename\s*\(`,
			},
		},
		{
			Category:       "Hardcoded Credentials",
			Severity:       types.SevCritical,
			CWE:            "CWE-798",
			Description:    "Credential material embedded in source",
			Recommendation: "Move secrets to environment variables or a secret manager and rotate the exposed value",
			Patterns: []PatternSpec{
				{Expr: `(password|passwd|pwd|secret|api[_-]?key|auth[_-]?token|access[_-]?token)\s*[:=]\s*["'][^"']{6,}["']`},
				{Expr: `AKIA[0-9A-Z]{16}`, Description: "AWS access key ID"},
				{Expr: `-----BEGIN (RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY`, Description: "Private key block"},
				{Expr: `(ghp|gho|ghs|ghr)_[A-Za-z0-9]{36,}`, Description: "GitHub token", Severity: types.SevHigh},
			},
			Whitelist: []string{
				`os\.getenv|os\.environ|process\.env|ENV\[`,
				`example|sample|placeholder|changeme|dummy|your[_-]`,
				`<[^>]+>`,
				`\*{4,}|x{5,}`,
			},
		},
		{
			Category:       "Weak Cryptography",
			Severity:       types.SevMedium,
			CWE:            "CWE-327",
			Description:    "Use of a broken or weak cryptographic primitive",
			Recommendation: "Use SHA-256 or stronger; for passwords use bcrypt, scrypt or argon2",
			Patterns: []PatternSpec{
				{Expr: `\b(md5|sha1)\s*\(|crypto/md5|crypto/sha1|MessageDigest\.getInstance\s*\(\s*["'](MD5|SHA-?1)`},
				{Expr: `\b(DES|RC4|3DES|ECB)\b.*\b(cipher|encrypt|mode)\b|\b(cipher|encrypt|mode)\b.*\b(DES|RC4|3DES|ECB)\b`, Severity: types.SevHigh},
				{Expr: `SSLv[23]|TLSv1\.0|ssl_version\s*=\s*`, Severity: types.SevHigh, Description: "Obsolete TLS/SSL protocol version"},
			},
			Whitelist: []string{
				`checksum|etag|cache[_-]?key|fingerprint`,
				`non[- ]?cryptographic`,
				`git|content[- ]address`,
			},
		},
		{
			Category:       "Insecure Deserialization",
			Severity:       types.SevHigh,
			CWE:            "CWE-502",
			Description:    "Deserialization of untrusted data",
			Recommendation: "Use a safe loader or a data-only format for untrusted input",
			Patterns: []PatternSpec{
				{Expr: `pickle\.loads?\s*\(|marshal\.loads?\s*\(`, Languages: []string{"python"}},
				{Expr: `yaml\.load\s*\(`, Severity: types.SevMedium, Languages: []string{"python"}},
				{Expr: `ObjectInputStream|\.readObject\s*\(`, Languages: []string{"java"}},
				{Expr: `unserialize\s*\(\s*\$`, Languages: []string{"php"}},
				{Expr: `Marshal\.load`, Languages: []string{"ruby"}},
			},
			Whitelist: []string{
				`SafeLoader|safe_load`,
				`trusted|internal[- ]only`,
			},
		},
		{
			Category:       "PowerShell Execution",
			Severity:       types.SevHigh,
			CWE:            "CWE-78",
			Description:    "Dynamic PowerShell execution of potentially untrusted input",
			Recommendation: "Avoid Invoke-Expression; validate inputs and use parameterized cmdlets",
			Languages:      []string{"powershell"},
			Patterns: []PatternSpec{
				{Expr: `Invoke-Expression|\biex\b\s`},
				{Expr: `Start-Process\s+.*\$`, Severity: types.SevMedium},
				{Expr: `DownloadString\s*\(.*\)\s*\|\s*iex`, Severity: types.SevCritical, Description: "Remote script piped into the interpreter"},
			},
			Whitelist: []string{
				`ValidateSet|ValidatePattern`,
			},
		},
		{
			Category:       "Server-Side Request Forgery",
			Severity:       types.SevMedium,
			CWE:            "CWE-918",
			Description:    "Outbound request URL assembled from untrusted input",
			Recommendation: "Validate the destination against an allowlist before issuing the request",
			Patterns: []PatternSpec{
				{Expr: `(requests\.(get|post|put)|urllib\.request\.urlopen)\s*\(.*(\+|%s|\.format|f["'])`, Languages: []string{"python"}},
				{Expr: `http\.Get\s*\(\s*[a-zA-Z_]\w*\s*(\+|\))`, Languages: []string{"go"}},
				{Expr: `(fetch|axios(\.get|\.post)?)\s*\(\s*(\x60.*\$\{|[a-zA-Z_]\w*\s*\+)`, Languages: []string{"javascript", "typescript"}},
			},
			Whitelist: []string{
				`allowlist|allowed[_-]?(hosts|urls|domains)`,
				`validate[_-]?url|is[_-]?valid[_-]?url`,
			},
		},
		{
			Category:       "Insecure Randomness",
			Severity:       types.SevLow,
			CWE:            "CWE-330",
			Description:    "Non-cryptographic randomness used in a security context",
			Recommendation: "Use the platform CSPRNG (crypto/rand, secrets, SecureRandom) for security material",
			Patterns: []PatternSpec{
				{Expr: `math/rand`, Languages: []string{"go"}},
				{Expr: `random\.(random|randint|choice)\s*\(.*\b(token|password|secret|key|nonce|salt)\b|\b(token|password|secret|key|nonce|salt)\b.*random\.(random|randint|choice)\s*\(`, Languages: []string{"python"}},
				{Expr: `Math\.random\s*\(\s*\).*(token|password|secret|session)`, Languages: []string{"javascript", "typescript"}},
			},
			Whitelist: []string{
				`crypto/rand`,
				`secrets\.|SecureRandom`,
				`jitter|backoff|shuffle|sampl(e|ing)|test`,
			},
		},
		{
			Category:       "Debug Code",
			Severity:       types.SevLow,
			CWE:            "CWE-489",
			Description:    "Debug output or configuration left enabled",
			Recommendation: "Remove debug statements and disable debug modes before release",
			Patterns: []PatternSpec{
				{Expr: `console\.log\s*\(.*(password|secret|token|credential)`, Languages: []string{"javascript", "typescript"}},
				{Expr: `\bprint(ln)?\s*\(.*(password|secret|token|credential)`},
				{Expr: `DEBUG\s*=\s*True`, Languages: []string{"python"}},
				{Expr: `display_errors\s*=\s*(1|on)`, Languages: []string{"php", "config"}},
			},
			Whitelist: []string{
				`redact|mask|\*{3,}`,
				`len\s*\(|length|count`,
			},
		},
	}
}
