package site

// pageTemplate is the Go html/template for the site page. The month
// payload rides along in a data attribute so client-side scripts can
// enhance the page without refetching.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} · {{.SiteTitle}}</title>
  <link rel="stylesheet" href="/style.css">
{{if .Canonical}}  <link rel="canonical" href="{{.Canonical}}">
{{end}}</head>
<body>
  <div class="wrap">
    <header class="site-header">
      <a class="site-title" href="/">{{.SiteTitle}}</a>
      <input type="search" id="search-input" placeholder="{{.SearchLabel}}" autocomplete="off">
    </header>
    <div class="search-results" id="search-results" hidden></div>
    <main class="layout">
      <section class="calendar-widget" data-daily-calendar data-daily-months="{{.Payload}}">
{{.CalendarHTML}}
      </section>
      <section class="article-panel" data-daily-article>
{{.ArticleHTML}}
      </section>
    </main>
  </div>
{{if .LiveReload}}  <script src="/livereload.js"></script>
{{end}}  <script src="/script.js"></script>
</body>
</html>
`

// cssContent is the site CSS. Colors and typography come from the
// --daily-* custom properties written ahead of this block.
const cssContent = `/* ============ Layout ============ */
* { box-sizing: border-box; margin: 0; padding: 0; }

body {
  background: var(--daily-background);
  color: var(--daily-text);
  font-family: var(--daily-font-family);
  line-height: 1.6;
}

.wrap {
  max-width: 960px;
  margin: 0 auto;
  padding: 24px 16px;
}

.site-header {
  display: flex;
  align-items: baseline;
  justify-content: space-between;
  gap: 16px;
  padding-bottom: 16px;
  border-bottom: 1px solid var(--daily-border);
  margin-bottom: 24px;
}

.site-title {
  font-size: 1.4rem;
  font-weight: 700;
  color: var(--daily-text);
  text-decoration: none;
}

#search-input {
  border: 1px solid var(--daily-border);
  border-radius: 6px;
  background: var(--daily-surface);
  color: var(--daily-text);
  padding: 6px 10px;
  font-family: inherit;
}

.search-results {
  background: var(--daily-surface);
  border: 1px solid var(--daily-border);
  border-radius: 8px;
  margin-bottom: 24px;
  padding: 8px 12px;
}

.search-results a {
  display: block;
  color: var(--daily-accent);
  text-decoration: none;
  padding: 6px 0;
  border-bottom: 1px solid var(--daily-border);
}

.search-results a:last-child { border-bottom: none; }
.search-results .result-day { color: var(--daily-muted); margin-right: 8px; }

.layout {
  display: grid;
  grid-template-columns: 320px 1fr;
  gap: 32px;
}

@media (max-width: 720px) {
  .layout { grid-template-columns: 1fr; }
}

/* ============ Calendar ============ */
.cal {
  width: 100%;
  border-collapse: collapse;
  background: var(--daily-surface);
  border: 1px solid var(--daily-border);
  border-radius: 8px;
}

.cal-caption {
  display: flex;
  align-items: center;
  justify-content: space-between;
  padding: 10px 12px;
  font-weight: 600;
}

.cal-nav {
  color: var(--daily-accent);
  text-decoration: none;
  font-size: 0.85rem;
}

.cal-nav.disabled {
  color: var(--daily-muted);
  cursor: default;
}

.cal th {
  color: var(--daily-muted);
  font-size: 0.75rem;
  font-weight: 500;
  text-transform: uppercase;
  padding: 6px 0;
}

.cal-day {
  text-align: center;
  padding: 8px 0;
  font-size: 0.9rem;
  border-radius: 6px;
}

.cal-day.outside { color: var(--daily-muted); opacity: 0.5; }

.cal-day.has-pages a {
  display: inline-block;
  min-width: 28px;
  color: var(--daily-accent);
  text-decoration: none;
  font-weight: 600;
  border-radius: 6px;
}

.cal-day.has-pages a:hover { background: var(--daily-accent-soft); }

.cal-day.selected,
.cal-day.selected a {
  background: var(--daily-accent);
  color: var(--daily-surface);
}

.cal-day.today { outline: 1px solid var(--daily-accent); }

/* ============ Article panel ============ */
.article-header time {
  color: var(--daily-muted);
  font-size: 0.85rem;
}

.article-title { margin: 4px 0 16px; }

.article-body h1, .article-body h2, .article-body h3 { margin: 16px 0 8px; }
.article-body p, .article-body ul, .article-body ol { margin-bottom: 12px; }
.article-body ul, .article-body ol { padding-left: 24px; }
.article-body a { color: var(--daily-accent); }
.article-body blockquote {
  border-left: 3px solid var(--daily-border);
  padding-left: 12px;
  color: var(--daily-muted);
}
.article-body pre {
  background: var(--daily-surface);
  border: 1px solid var(--daily-border);
  border-radius: 8px;
  padding: 12px;
  overflow-x: auto;
  margin-bottom: 12px;
}
.article-body code { font-size: 0.88em; }
.article-body img { max-width: 100%; }

.article-empty {
  color: var(--daily-muted);
  font-style: italic;
}
`

// jsContent is the client enhancement script: keyboard navigation over
// the month links and a small fuzzy-free search box over the prebuilt
// index. The server renders everything, so the page works without it.
const jsContent = `(function () {
  'use strict';

  // Arrow keys follow the month navigation links.
  document.addEventListener('keydown', function (e) {
    if (e.target.tagName === 'INPUT') return;
    var sel = e.key === 'ArrowLeft' ? 'a.cal-nav-prev' : e.key === 'ArrowRight' ? 'a.cal-nav-next' : null;
    if (!sel) return;
    var link = document.querySelector(sel);
    if (link) window.location = link.getAttribute('href');
  });

  var input = document.getElementById('search-input');
  var results = document.getElementById('search-results');
  if (!input || !results) return;

  var index = null;
  function loadIndex(cb) {
    if (index) return cb(index);
    fetch('/search-index.json')
      .then(function (r) { return r.json(); })
      .then(function (data) { index = data; cb(index); })
      .catch(function () { cb([]); });
  }

  input.addEventListener('input', function () {
    var q = input.value.trim().toLowerCase();
    if (!q) {
      results.hidden = true;
      results.innerHTML = '';
      return;
    }
    loadIndex(function (entries) {
      var hits = entries.filter(function (e) {
        return (e.day + ' ' + e.title + ' ' + e.summary).toLowerCase().indexOf(q) !== -1;
      }).slice(0, 10);
      results.innerHTML = hits.map(function (e) {
        return '<a href="' + e.href + '"><span class="result-day">' + e.day + '</span>' + e.title + '</a>';
      }).join('');
      results.hidden = hits.length === 0;
    });
  });
})();
`

// liveReloadJS reconnects to the dev server websocket and reloads the
// page whenever a rebuild finishes. Only served by the dev server.
const liveReloadJS = `(function () {
  'use strict';
  function connect() {
    var proto = window.location.protocol === 'https:' ? 'wss://' : 'ws://';
    var ws = new WebSocket(proto + window.location.host + '/ws');
    ws.onmessage = function (msg) {
      if (msg.data === 'reload') window.location.reload();
    };
    ws.onclose = function () {
      setTimeout(connect, 1000);
    };
  }
  connect();
})();
`
