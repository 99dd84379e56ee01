package views

// clientScript drives the parts only a browser can do: opening the chat app,
// reporting whether the new window survived, and writing to the clipboard.
// Every state change goes through the JSON API.
const clientScript = `
(function () {
  "use strict";

  function post(path, body) {
    return fetch(path, {
      method: "POST",
      credentials: "same-origin",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(body === undefined ? {} : body)
    }).then(function (res) {
      return res.json().then(function (data) {
        return { ok: res.ok, status: res.status, data: data };
      });
    });
  }

  function report(level, message, context) {
    var entry = { timestamp: new Date().toISOString(), level: level, message: message, context: context };
    post("/api/v1/logs", { logs: [entry] }).catch(function () {});
  }

  function refresh() {
    window.location.href = "/";
  }

  function probe(win) {
    if (!win) return "missing";
    try {
      if (typeof win.closed === "undefined") return "indeterminate";
      return win.closed ? "closed" : "open";
    } catch (e) {
      return "indeterminate";
    }
  }

  // win is a window already opened by the submit gesture; without one the
  // link is opened here.
  function handoff(link, win) {
    if (win) {
      try { win.location.href = link; } catch (e) { win = null; }
    } else {
      win = window.open(link, "_blank");
    }
    var state = probe(win);
    return post("/api/v1/booking/handoff", { window: state }).then(function (r) {
      if (!r.ok) report("warn", "handoff report rejected", { status: r.status, window: state });
      if (r.ok && r.data.fallbackVisible) refresh();
    });
  }

  function showError(errors) {
    var el = document.getElementById("scheduledAt-error");
    var input = document.getElementById("scheduledAt");
    if (!el || !input) return;
    var msg = errors.scheduledAt || "";
    el.textContent = msg;
    if (msg) input.setAttribute("aria-invalid", "true");
    else input.removeAttribute("aria-invalid");
  }

  var form = document.getElementById("booking-form");
  if (form) {
    form.addEventListener("submit", function (ev) {
      ev.preventDefault();
      var data = {};
      new FormData(form).forEach(function (v, k) { data[k] = v; });
      // popup blockers only allow windows opened inside the click itself
      var pending = window.open("", "_blank");
      var discard = function () {
        if (pending && !pending.closed) pending.close();
      };
      post("/api/v1/booking/submit", data).then(function (r) {
        if (r.ok && r.data.success) return handoff(r.data.deepLink, pending);
        discard();
        showError((r.data && r.data.errors) || {});
      }).catch(function (e) {
        discard();
        report("error", "booking submit request failed", { reason: String(e) });
        form.submit();
      });
    });

    form.addEventListener("input", function (ev) {
      if (ev.target.name === "scheduledAt") showError({});
    });

    form.addEventListener("change", function (ev) {
      var t = ev.target;
      if (!t.name) return;
      post("/api/v1/booking/field", { field: t.name, value: t.value });
    });
  }

  var copyBtn = document.getElementById("fallback-copy");
  var copyTimer = null;
  function selectMessage() {
    var ta = document.getElementById("fallback-text");
    if (ta) { ta.focus(); ta.select(); }
  }
  if (copyBtn) {
    copyBtn.addEventListener("click", function () {
      post("/api/v1/booking/fallback/copy").then(function (r) {
        if (!r.ok) return;
        var shown = function () {
          copyBtn.textContent = "Copied";
          copyBtn.classList.add("copied");
          clearTimeout(copyTimer);
          copyTimer = setTimeout(function () {
            copyBtn.textContent = "Copy";
            copyBtn.classList.remove("copied");
          }, r.data.copiedForMillis);
        };
        var failed = function (e) {
          report("warn", "clipboard write failed", { reason: e ? String(e) : "unavailable" });
          selectMessage();
        };
        if (navigator.clipboard) navigator.clipboard.writeText(r.data.message).then(shown, failed);
        else failed();
      });
    });
  }

  var retry = document.getElementById("fallback-retry");
  if (retry) {
    retry.addEventListener("click", function (ev) {
      ev.preventDefault();
      var report = probe(window.open(retry.href, "_blank"));
      post("/api/v1/booking/fallback/retry").then(function () {
        return post("/api/v1/booking/handoff", { window: report });
      }).then(function (r) {
        if (r.ok && !r.data.fallbackVisible) refresh();
      });
    });
  }

  var menuForm = document.querySelector(".menu-toggle-form");
  if (menuForm) {
    menuForm.addEventListener("submit", function (ev) {
      ev.preventDefault();
      post("/api/v1/ui/menu").then(function (r) {
        if (!r.ok) return;
        var open = r.data.menuOpen;
        var btn = document.getElementById("menu-toggle");
        document.getElementById("nav-links").classList.toggle("open", open);
        btn.setAttribute("aria-expanded", String(open));
        btn.textContent = open ? "Close" : "Menu";
      });
    });
  }

  document.querySelectorAll("[data-section]").forEach(function (a) {
    a.addEventListener("click", function () {
      var section = a.getAttribute("data-section");
      post("/api/v1/ui/section", { section: section }).then(function (r) {
        if (!r.ok) return;
        document.querySelectorAll(".nav-link").forEach(function (l) {
          l.classList.toggle("active", l.getAttribute("data-section") === section);
        });
        document.getElementById("nav-links").classList.remove("open");
        document.body.setAttribute("data-active-section", section);
      });
    });
  });

  var launch = document.body.getAttribute("data-launch-handoff");
  if (launch) handoff(launch);
})();
`

const stylesheet = `
:root { --paper: #f4f1ea; --ink: #111; --accent: #ff4d00; }
* { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, sans-serif; background: var(--paper); color: var(--ink); }
a { color: inherit; }
.site-nav { position: fixed; top: 0; left: 0; right: 0; z-index: 50; display: flex; align-items: center; justify-content: space-between; padding: 1rem 1.5rem; background: var(--paper); border-bottom: 1px solid var(--ink); }
.brand { font-weight: 800; text-transform: uppercase; text-decoration: none; letter-spacing: .05em; }
.nav-links { display: flex; gap: 1.5rem; list-style: none; margin: 0; padding: 0; }
.nav-link { text-decoration: none; text-transform: uppercase; font-size: .85rem; font-weight: 700; }
.nav-link.active { color: var(--accent); }
.menu-toggle-form { display: none; }
.menu-toggle { background: none; border: 1px solid var(--ink); padding: .4rem .8rem; font-weight: 700; text-transform: uppercase; }
@media (max-width: 720px) {
  .menu-toggle-form { display: block; }
  .nav-links { display: none; position: absolute; top: 100%; left: 0; right: 0; flex-direction: column; padding: 1.5rem; background: var(--paper); border-bottom: 1px solid var(--ink); }
  .nav-links.open { display: flex; }
}
.hero { padding: 8rem 1.5rem 3rem; border-bottom: 1px solid var(--ink); }
.hero-title { font-size: clamp(3rem, 12vw, 8rem); line-height: .9; text-transform: uppercase; margin: 0 0 2rem; }
.hero-title .outline { color: transparent; -webkit-text-stroke: 2px var(--ink); }
.hero-lede { display: flex; flex-wrap: wrap; gap: 2rem; align-items: flex-end; justify-content: space-between; max-width: 72rem; }
.hero-lede p { max-width: 28rem; font-size: 1.2rem; line-height: 1.6; }
.cta { border: 1px solid var(--ink); padding: 1rem 2rem; text-transform: uppercase; font-weight: 700; text-decoration: none; }
.marquee { overflow: hidden; white-space: nowrap; background: var(--accent); color: #fff; padding: 1rem 0; border-bottom: 1px solid var(--ink); }
.marquee-track { display: inline-block; animation: marquee 30s linear infinite; }
.marquee-item { margin: 0 2rem; font-weight: 800; text-transform: uppercase; letter-spacing: .1em; }
@keyframes marquee { from { transform: translateX(0); } to { transform: translateX(-50%); } }
section, .site-footer { padding: 4rem 1.5rem; border-bottom: 1px solid var(--ink); }
h2 { text-transform: uppercase; font-size: 2.5rem; margin-top: 0; }
.service-grid { display: grid; gap: 1px; grid-template-columns: repeat(auto-fit, minmax(14rem, 1fr)); background: var(--ink); border: 1px solid var(--ink); }
.service-card { background: var(--paper); padding: 2rem; }
#booking-form { display: grid; gap: 1.25rem; max-width: 40rem; }
.field { display: grid; gap: .4rem; }
.field label, .caption { font-size: .75rem; font-weight: 700; text-transform: uppercase; color: #555; }
input, select, textarea { font: inherit; padding: .75rem; border: 1px solid var(--ink); background: #fff; }
input[aria-invalid="true"] { border-color: var(--accent); }
.field-error { margin: 0; min-height: 1em; color: var(--accent); font-size: .85rem; font-weight: 600; }
.submit, .retry { display: block; text-align: center; background: var(--ink); color: #fff; border: 0; padding: 1rem; font-weight: 700; text-transform: uppercase; letter-spacing: .1em; text-decoration: none; cursor: pointer; }
.retry { background: var(--accent); }
.fallback-backdrop { position: fixed; inset: 0; z-index: 70; display: flex; align-items: center; justify-content: center; padding: 1rem; background: rgba(0, 0, 0, .8); }
.fallback { background: #fff; padding: 2rem; max-width: 32rem; width: 100%; border: 2px solid var(--accent); }
.fallback-head { display: flex; justify-content: space-between; align-items: flex-start; }
.fallback-head h3 { margin: 0; color: var(--accent); text-transform: uppercase; font-size: 1.5rem; }
.close { background: none; border: 0; font-size: 1.5rem; cursor: pointer; }
.fallback-destination { background: #f3f3f3; border: 1px solid #ccc; padding: 1rem; margin-bottom: 1rem; }
.fallback-destination .mono, #fallback-text { font-family: ui-monospace, monospace; }
.fallback-destination .mono { margin: .25rem 0 0; font-size: 1.2rem; font-weight: 700; user-select: all; }
.fallback-message { position: relative; margin-bottom: 1.5rem; }
#fallback-text { width: 100%; resize: none; font-size: .85rem; background: #fafafa; }
.copy { position: absolute; top: 1.6rem; right: .5rem; background: #fff; border: 1px solid #ccc; padding: .4rem .6rem; font-size: .75rem; font-weight: 700; text-transform: uppercase; cursor: pointer; }
.copy.copied { color: #15803d; }
.contact-link { font-weight: 700; font-size: 1.25rem; }
.fine-print { font-size: .8rem; color: #666; }
`
