package server

// testPageHTML is a static exerciser for the menu API. It mirrors what the
// API does over the wire so operators can poke at it from a browser.
const testPageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Lion Dine Menu API Test</title>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 1200px; margin: 0 auto; padding: 2rem; }
    select, button { padding: 0.5rem 1rem; font-size: 1rem; border-radius: 4px; border: 1px solid #ccc; margin-right: 1rem; }
    button { cursor: pointer; background: #0070f3; color: white; border: none; }
    button:disabled { background: #999; cursor: wait; }
    pre { background: #f4f4f4; padding: 1rem; border-radius: 4px; overflow: auto; }
    .error { color: #c00; font-weight: bold; }
  </style>
</head>
<body>
  <h1>&#129409; Lion Dine Menu API Test</h1>
  <p>Test the menu parsing API with different meal types.</p>

  <label for="meal"><strong>Select Meal Type:</strong></label><br>
  <select id="meal">
    <option value="breakfast">Breakfast</option>
    <option value="lunch">Lunch</option>
    <option value="dinner">Dinner</option>
    <option value="latenight">Late Night</option>
  </select>
  <button id="fetch">Fetch Menu</button>
  <button id="refresh">Refresh (bypass cache)</button>
  <button id="stats">Cache Stats</button>

  <div id="status"></div>
  <pre id="result"></pre>

  <script>
    const statusEl = document.getElementById('status');
    const resultEl = document.getElementById('result');

    async function call(url) {
      statusEl.textContent = 'Loading...';
      statusEl.className = '';
      resultEl.textContent = '';
      for (const b of document.querySelectorAll('button')) b.disabled = true;
      try {
        const resp = await fetch(url);
        const data = await resp.json();
        if (!resp.ok) throw new Error(data.details || data.error || 'request failed');
        statusEl.textContent = 'OK (X-Cache: ' + (resp.headers.get('X-Cache') || 'n/a') + ')';
        resultEl.textContent = JSON.stringify(data, null, 2);
      } catch (err) {
        statusEl.textContent = err.message;
        statusEl.className = 'error';
      } finally {
        for (const b of document.querySelectorAll('button')) b.disabled = false;
      }
    }

    const meal = () => document.getElementById('meal').value;
    document.getElementById('fetch').onclick = () => call('/api/menu?meal=' + meal());
    document.getElementById('refresh').onclick = () => call('/api/menu?meal=' + meal() + '&refresh=true');
    document.getElementById('stats').onclick = () => call('/api/cache');
  </script>
</body>
</html>
`
