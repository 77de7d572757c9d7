package site

import (
	"fmt"

	"github.com/termtip/termtip/internal/annotate"
)

// pageTemplate is the Go html/template for each documentation page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} - {{.ProjectName}}</title>
  <link rel="stylesheet" href="{{.BasePath}}style.css">
</head>
<body>
  <nav class="sidebar" id="sidebar">
    <div class="sidebar-header">
      <h2 class="project-title">{{.ProjectName}}</h2>
    </div>
    <div class="sidebar-tree" id="sidebar-tree">
      {{.TreeHTML}}
    </div>
  </nav>
  <main class="content">
    <article class="page-content">
      {{.Content}}
    </article>
  </main>
  <script src="{{.BasePath}}termtip.js"></script>
</body>
</html>`

// cssContent is the stylesheet for the site chrome and the annotation markup.
// The termtip-* selectors match the class hooks the annotation factory emits.
const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #57606a;
  --border: #d0d7de;
  --accent: #0969da;
  --popup-bg: #ffffff;
  --popup-shadow: 0 8px 24px rgba(31, 35, 40, 0.15);
}

* { box-sizing: border-box; }

body {
  margin: 0;
  display: flex;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
  color: var(--fg);
  background: var(--bg);
  line-height: 1.6;
}

.sidebar {
  width: 280px;
  min-height: 100vh;
  border-right: 1px solid var(--border);
  padding: 16px;
  flex-shrink: 0;
}

.sidebar ul { list-style: none; padding-left: 16px; margin: 4px 0; }
.sidebar a { color: var(--muted); text-decoration: none; }
.sidebar a:hover, .sidebar a.active { color: var(--accent); }
.dir-toggle { font-weight: 600; cursor: default; }

.content { flex: 1; max-width: 920px; padding: 32px 48px; }

pre { background: #f6f8fa; padding: 12px; border-radius: 6px; overflow-x: auto; }
code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }

.termtip-glossary dt { font-weight: 600; margin-top: 12px; }
.termtip-glossary dd { margin: 2px 0 0 0; color: var(--muted); }

/* ---- term annotations ---- */

.termtip-term {
  position: relative;
  border-bottom: 1px dotted var(--accent);
}

.termtip-trigger { }

.termtip-indicator {
  border: none;
  background: none;
  color: var(--accent);
  cursor: pointer;
  font-size: 0.75em;
  padding: 0 2px;
  vertical-align: super;
}

.termtip-popup {
  position: absolute;
  left: 0;
  top: calc(100% + 6px);
  z-index: 10;
  display: block;
  min-width: 240px;
  max-width: 360px;
  padding: 12px 14px;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: var(--popup-bg);
  box-shadow: var(--popup-shadow);
  font-size: 0.9em;
}

.termtip-popup[hidden] { display: none; }

.termtip-title { display: block; font-weight: 600; margin-bottom: 4px; }
.termtip-body { display: block; color: var(--muted); margin-bottom: 8px; }
.termtip-link { color: var(--accent); font-size: 0.85em; }
`

// jsTemplate is the browser-side interaction controller. It mirrors the
// PopupController state machine: delegated document-wide handling, at most
// one popup open at a time, outside clicks close everything, and hover
// reveal only at or above the breakpoint.
const jsTemplate = `(function () {
  'use strict';

  var TERM = '%s';
  var INDICATOR = '%s';
  var POPUP = '%s';
  var HOVER_BREAKPOINT = %d;

  function closeAll() {
    var open = document.querySelectorAll('.' + POPUP + ':not([hidden])');
    for (var i = 0; i < open.length; i++) {
      open[i].setAttribute('hidden', '');
      var btn = open[i].parentElement.querySelector('.' + INDICATOR);
      if (btn) btn.setAttribute('aria-expanded', 'false');
    }
  }

  function openPopup(term) {
    var popup = term.querySelector('.' + POPUP);
    if (!popup) return;
    var wasOpen = !popup.hasAttribute('hidden');
    closeAll();
    if (!wasOpen) {
      popup.removeAttribute('hidden');
      var btn = term.querySelector('.' + INDICATOR);
      if (btn) btn.setAttribute('aria-expanded', 'true');
    }
  }

  document.addEventListener('click', function (e) {
    var term = e.target.closest('.' + TERM);
    if (!term) {
      closeAll();
      return;
    }
    if (e.target.closest('a')) return;
    openPopup(term);
  });

  var hoverEnabled = window.matchMedia('(min-width: ' + HOVER_BREAKPOINT + 'px)');

  document.addEventListener('mouseover', function (e) {
    if (!hoverEnabled.matches) return;
    var indicator = e.target.closest('.' + INDICATOR);
    if (!indicator) return;
    var term = indicator.closest('.' + TERM);
    if (!term) return;
    var popup = term.querySelector('.' + POPUP);
    // Hover only reveals; re-hovering an open popup must not close it.
    if (popup && popup.hasAttribute('hidden')) openPopup(term);
  });
})();
`

// InteractionScript renders the browser script with the class hooks and
// hover breakpoint the annotation engine uses, so the two never drift.
func InteractionScript() string {
	return fmt.Sprintf(jsTemplate,
		annotate.ClassTerm,
		annotate.ClassIndicator,
		annotate.ClassPopup,
		annotate.HoverBreakpoint,
	)
}
