package scanner

// DefaultIncludePatterns covers the common source extensions used across
// the languages this implementation understands. User configuration may
// extend this list.
func DefaultIncludePatterns() []string {
	return []string{
		"**/*.ts",
		"**/*.tsx",
		"**/*.js",
		"**/*.jsx",
		"**/*.py",
		"**/*.go",
		"**/*.rs",
		"**/*.java",
		"**/*.c",
		"**/*.h",
		"**/*.cpp",
		"**/*.hpp",
		"**/*.cc",
		"**/*.cxx",
		"**/*.cs",
		"**/*.php",
		"**/*.rb",
		"**/*.swift",
		"**/*.kt",
		"**/*.scala",
		"**/*.lua",
		"**/*.sh",
		"**/*.html",
		"**/*.css",
		"**/*.liquid",
		"**/*.razor",
	}
}

// DefaultExcludePatterns prunes VCS metadata, dependency/package-manager
// caches, build outputs, framework caches, IDE metadata, and coverage
// artifacts across the language ecosystems this implementation targets.
func DefaultExcludePatterns() []string {
	return []string{
		"**/.git/**",
		"**/node_modules/**",
		"**/vendor/**",
		"**/Pods/**",
		"**/dist/**",
		"**/build/**",
		"**/out/**",
		"**/bin/**",
		"**/obj/**",
		"**/target/**",
		"**/*.min.js",
		"**/*.bundle.js",
		"**/.next/**",
		"**/.nuxt/**",
		"**/.svelte-kit/**",
		"**/.output/**",
		"**/.turbo/**",
		"**/.cache/**",
		"**/.parcel-cache/**",
		"**/.vite/**",
		"**/.astro/**",
		"**/.docusaurus/**",
		"**/.gatsby/**",
		"**/.webpack/**",
		"**/.nx/**",
		"**/.yarn/cache/**",
		"**/.pnpm-store/**",
		"**/storybook-static/**",
		"**/.expo/**",
		"**/web-build/**",
		"**/ios/Pods/**",
		"**/ios/build/**",
		"**/android/build/**",
		"**/android/.gradle/**",
		"**/__pycache__/**",
		"**/.venv/**",
		"**/venv/**",
		"**/.pytest_cache/**",
		"**/.mypy_cache/**",
		"**/.ruff_cache/**",
		"**/.tox/**",
		"**/.nox/**",
		"**/*.egg-info/**",
		"**/.eggs/**",
		"**/go/pkg/mod/**",
		"**/target/debug/**",
		"**/target/release/**",
		"**/.gradle/**",
		"**/.m2/**",
		"**/generated-sources/**",
		"**/.kotlin/**",
		"**/.vs/**",
		"**/.nuget/**",
		"**/artifacts/**",
		"**/publish/**",
		"**/cmake-build-*/**",
		"**/CMakeFiles/**",
		"**/bazel-*/**",
		"**/vcpkg_installed/**",
		"**/.conan/**",
		"**/Debug/**",
		"**/Release/**",
		"**/x64/**",
		"**/release/**",
		"**/*.app/**",
		"**/*.asar",
		"**/DerivedData/**",
		"**/.build/**",
		"**/.swiftpm/**",
		"**/xcuserdata/**",
		"**/Carthage/Build/**",
		"**/SourcePackages/**",
		"**/.composer/**",
		"**/storage/framework/**",
		"**/bootstrap/cache/**",
		"**/.bundle/**",
		"**/tmp/cache/**",
		"**/public/assets/**",
		"**/public/packs/**",
		"**/.yardoc/**",
		"**/coverage/**",
		"**/htmlcov/**",
		"**/.nyc_output/**",
		"**/test-results/**",
		"**/.coverage/**",
		"**/.idea/**",
		"**/logs/**",
		"**/tmp/**",
		"**/temp/**",
		"**/_build/**",
		"**/docs/_build/**",
		"**/site/**",
		"**/.coraline/**",
	}
}
