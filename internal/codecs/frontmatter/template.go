package frontmatter

// SynthesisTemplateFilename is the suggested file name for the bridge template.
const SynthesisTemplateFilename = "methodosync-synthesis-template.md"

// SynthesisTemplate is the bridge document analysts fill in between phases.
// Decoding it unchanged yields empty identified_categories and
// overarching_themes lists.
const SynthesisTemplate = `---
identified_categories:
  -
overarching_themes:
  -
analyst_notes: ""
---

## Synthesis Notes

<!--
  Instructions:
  1. Review your Phase 1 annotation files in your Obsidian vault.
  2. Use Obsidian's search or Dataview plugin to review all your open codes and axial categories.
  3. Decide which categories are significant enough for quantitative measurement.
  4. Add each finalized category name to the 'identified_categories' list above.
  5. Add broader theoretical themes to 'overarching_themes'.
  6. Upload this completed file in Phase 2 to auto-generate your codebook.
-->

### Categories Identified
<!-- List your finalized categories here with brief justifications -->

### Theoretical Connections
<!-- How do your categories relate to existing theory? -->

### Questions for Further Coding
<!-- What gaps remain? What requires more data? -->
`
